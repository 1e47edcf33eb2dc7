package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// PgxDashboardRepository implements the ports.DashboardRepository interface
// using pgxpool.
type PgxDashboardRepository struct {
	BaseRepository
}

// NewPgxDashboardRepository creates a new PgxDashboardRepository.
func NewPgxDashboardRepository(db *pgxpool.Pool) *PgxDashboardRepository {
	return &PgxDashboardRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// CountReceipts returns the total number of stored receipts.
func (r *PgxDashboardRepository) CountReceipts(ctx context.Context) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM receipts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count receipts: %w", err)
	}
	return count, nil
}

// CountReportsByStatus returns the number of reports in the given status.
func (r *PgxDashboardRepository) CountReportsByStatus(ctx context.Context, status domain.ReportStatus) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM reports WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}

// GetCategoryBreakdown aggregates receipt spend per category. Totals mix the
// receipts' display amounts (converted where a conversion exists, original
// otherwise), matching how reports total their receipts. Uncategorized
// receipts are grouped under a synthetic row.
func (r *PgxDashboardRepository) GetCategoryBreakdown(ctx context.Context) ([]domain.CategoryBreakdownRow, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT COALESCE(c.name, 'Uncategorized'),
			COALESCE(c.color, '#a3a3a3'),
			SUM(COALESCE(rc.converted_total, rc.total)),
			COUNT(*)
		FROM receipts rc
		LEFT JOIN categories c ON c.category_id = rc.category_id
		GROUP BY c.name, c.color
		ORDER BY SUM(COALESCE(rc.converted_total, rc.total)) DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := []domain.CategoryBreakdownRow{}
	for rows.Next() {
		var row domain.CategoryBreakdownRow
		if err := rows.Scan(&row.CategoryName, &row.Color, &row.Total, &row.Count); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %w", err)
		}
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breakdown rows: %w", err)
	}
	return breakdown, nil
}
