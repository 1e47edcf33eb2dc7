package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// PgxReportRepository implements the ports.ReportRepository interface using pgxpool.
type PgxReportRepository struct {
	BaseRepository
}

// NewPgxReportRepository creates a new PgxReportRepository.
func NewPgxReportRepository(db *pgxpool.Pool) *PgxReportRepository {
	return &PgxReportRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SaveReport inserts a new report.
func (r *PgxReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO reports (report_id, name, description, status, date_from, date_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		report.ReportID, report.Name, report.Description, report.Status,
		report.DateFrom, report.DateTo, report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// UpdateReport updates a report's mutable fields.
func (r *PgxReportRepository) UpdateReport(ctx context.Context, report domain.Report) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE reports SET name = $1, description = $2, status = $3,
			date_from = $4, date_to = $5, updated_at = $6
		WHERE report_id = $7`,
		report.Name, report.Description, report.Status,
		report.DateFrom, report.DateTo, report.UpdatedAt, report.ReportID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReportByID retrieves a report by its ID.
func (r *PgxReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	var report domain.Report
	err := r.Pool.QueryRow(ctx, `
		SELECT report_id, name, description, status, date_from, date_to, created_at, updated_at
		FROM reports WHERE report_id = $1`, reportID,
	).Scan(&report.ReportID, &report.Name, &report.Description, &report.Status,
		&report.DateFrom, &report.DateTo, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find report: %w", err)
	}
	return &report, nil
}

// ListReports returns all reports, newest first.
func (r *PgxReportRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT report_id, name, description, status, date_from, date_to, created_at, updated_at
		FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	reports := []domain.Report{}
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(&report.ReportID, &report.Name, &report.Description, &report.Status,
			&report.DateFrom, &report.DateTo, &report.CreatedAt, &report.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}
	return reports, nil
}

// DeleteReport removes a report. The caller is responsible for unassigning
// the report's receipts first.
func (r *PgxReportRepository) DeleteReport(ctx context.Context, reportID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM reports WHERE report_id = $1`, reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
