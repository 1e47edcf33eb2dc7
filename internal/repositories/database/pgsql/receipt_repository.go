package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	portsrepo "github.com/receiptly/receipt_management_app/internal/core/ports"
)

// PgxReceiptRepository implements the ports.ReceiptRepository interface using pgxpool.
type PgxReceiptRepository struct {
	BaseRepository
}

// NewPgxReceiptRepository creates a new PgxReceiptRepository.
func NewPgxReceiptRepository(db *pgxpool.Pool) *PgxReceiptRepository {
	return &PgxReceiptRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const receiptColumns = `
	receipt_id, vendor_name, receipt_date, line_items, subtotal, tax, total,
	original_currency, converted_currency, converted_total, exchange_rate,
	COALESCE(category_id::text, ''), notes, file_name, file_type, drive_file_id,
	report_id, ai_extracted, created_at, updated_at`

// nullIfEmpty maps an unset category reference to SQL NULL so the foreign
// key stays satisfiable.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullDecimalToPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

func ptrToNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// scanReceipt scans one receipt row (without file bytes).
func scanReceipt(row pgx.Row) (*domain.Receipt, error) {
	var receipt domain.Receipt
	var lineItemsJSON []byte
	var subtotal, tax, convertedTotal, exchangeRate decimal.NullDecimal

	err := row.Scan(
		&receipt.ReceiptID, &receipt.VendorName, &receipt.Date, &lineItemsJSON,
		&subtotal, &tax, &receipt.Total,
		&receipt.OriginalCurrency, &receipt.ConvertedCurrency, &convertedTotal, &exchangeRate,
		&receipt.CategoryID, &receipt.Notes, &receipt.FileName, &receipt.FileType,
		&receipt.DriveFileID, &receipt.ReportID,
		&receipt.AIExtracted, &receipt.CreatedAt, &receipt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	receipt.Subtotal = nullDecimalToPtr(subtotal)
	receipt.Tax = nullDecimalToPtr(tax)
	receipt.ConvertedTotal = nullDecimalToPtr(convertedTotal)
	receipt.ExchangeRate = nullDecimalToPtr(exchangeRate)

	if len(lineItemsJSON) > 0 {
		if err := json.Unmarshal(lineItemsJSON, &receipt.LineItems); err != nil {
			return nil, fmt.Errorf("failed to decode line items: %w", err)
		}
	}
	if receipt.LineItems == nil {
		receipt.LineItems = []domain.LineItem{}
	}

	return &receipt, nil
}

// SaveReceipt inserts a new receipt including its file bytes.
func (r *PgxReceiptRepository) SaveReceipt(ctx context.Context, receipt domain.Receipt) error {
	lineItemsJSON, err := json.Marshal(receipt.LineItems)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	_, err = r.Pool.Exec(ctx, `
		INSERT INTO receipts (
			receipt_id, vendor_name, receipt_date, line_items, subtotal, tax, total,
			original_currency, converted_currency, converted_total, exchange_rate,
			category_id, notes, file_name, file_type, file_data, drive_file_id,
			report_id, ai_extracted, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
		receipt.ReceiptID, receipt.VendorName, receipt.Date, lineItemsJSON,
		ptrToNullDecimal(receipt.Subtotal), ptrToNullDecimal(receipt.Tax), receipt.Total,
		receipt.OriginalCurrency, receipt.ConvertedCurrency,
		ptrToNullDecimal(receipt.ConvertedTotal), ptrToNullDecimal(receipt.ExchangeRate),
		nullIfEmpty(receipt.CategoryID), receipt.Notes, receipt.FileName, receipt.FileType,
		receipt.FileData, receipt.DriveFileID, receipt.ReportID,
		receipt.AIExtracted, receipt.CreatedAt, receipt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}
	return nil
}

// UpdateReceipt updates every mutable column except file bytes. The
// conversion-unit columns are written together on every update so they can
// never drift apart.
func (r *PgxReceiptRepository) UpdateReceipt(ctx context.Context, receipt domain.Receipt) error {
	lineItemsJSON, err := json.Marshal(receipt.LineItems)
	if err != nil {
		return fmt.Errorf("failed to encode line items: %w", err)
	}

	tag, err := r.Pool.Exec(ctx, `
		UPDATE receipts SET
			vendor_name = $1, receipt_date = $2, line_items = $3, subtotal = $4,
			tax = $5, total = $6, original_currency = $7, converted_currency = $8,
			converted_total = $9, exchange_rate = $10, category_id = $11,
			notes = $12, report_id = $13, updated_at = $14
		WHERE receipt_id = $15`,
		receipt.VendorName, receipt.Date, lineItemsJSON,
		ptrToNullDecimal(receipt.Subtotal), ptrToNullDecimal(receipt.Tax), receipt.Total,
		receipt.OriginalCurrency, receipt.ConvertedCurrency,
		ptrToNullDecimal(receipt.ConvertedTotal), ptrToNullDecimal(receipt.ExchangeRate),
		nullIfEmpty(receipt.CategoryID), receipt.Notes, receipt.ReportID, receipt.UpdatedAt,
		receipt.ReceiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindReceiptByID retrieves a receipt, optionally including file bytes.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string, withFileData bool) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1`
	receipt, err := scanReceipt(r.Pool.QueryRow(ctx, query, receiptID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}

	if withFileData {
		err = r.Pool.QueryRow(ctx, `SELECT file_data FROM receipts WHERE receipt_id = $1`, receiptID).Scan(&receipt.FileData)
		if err != nil {
			return nil, fmt.Errorf("failed to load receipt file data: %w", err)
		}
	}
	return receipt, nil
}

// buildReceiptFilter translates a ReceiptFilter into a WHERE clause.
func buildReceiptFilter(filter portsrepo.ReceiptFilter) (string, []any) {
	var clauses []string
	var args []any

	addArg := func(value any) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VendorSearch != "" {
		clauses = append(clauses, "vendor_name ILIKE "+addArg("%"+filter.VendorSearch+"%"))
	}
	if filter.CategoryID != "" {
		clauses = append(clauses, "category_id = "+addArg(filter.CategoryID))
	}
	if filter.ReportID != "" {
		clauses = append(clauses, "report_id = "+addArg(filter.ReportID))
	}
	if filter.Unassigned {
		clauses = append(clauses, "report_id IS NULL")
	}
	if filter.DateFrom != nil {
		clauses = append(clauses, "receipt_date >= "+addArg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		clauses = append(clauses, "receipt_date <= "+addArg(*filter.DateTo))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}
	return where, args
}

// ListReceipts returns a filtered page of receipts (newest first) and the
// total match count. File bytes are never loaded here.
func (r *PgxReceiptRepository) ListReceipts(ctx context.Context, filter portsrepo.ReceiptFilter) ([]domain.Receipt, int, error) {
	where, args := buildReceiptFilter(filter)

	var total int
	if err := r.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM receipts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count receipts: %w", err)
	}

	query := "SELECT " + receiptColumns + " FROM receipts" + where +
		" ORDER BY receipt_date DESC, created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, *receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating receipt rows: %w", err)
	}

	return receipts, total, nil
}

// FindReceiptsByIDs retrieves the named receipts, newest first.
func (r *PgxReceiptRepository) FindReceiptsByIDs(ctx context.Context, receiptIDs []string, withFileData bool) ([]domain.Receipt, error) {
	if len(receiptIDs) == 0 {
		return []domain.Receipt{}, nil
	}

	query := "SELECT " + receiptColumns + " FROM receipts WHERE receipt_id = ANY($1) ORDER BY receipt_date DESC"
	rows, err := r.Pool.Query(ctx, query, receiptIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find receipts by IDs: %w", err)
	}
	defer rows.Close()

	receipts := []domain.Receipt{}
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receipt row: %w", err)
		}
		receipts = append(receipts, *receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating receipt rows: %w", err)
	}

	if withFileData {
		for i := range receipts {
			err := r.Pool.QueryRow(ctx, `SELECT file_data FROM receipts WHERE receipt_id = $1`, receipts[i].ReceiptID).Scan(&receipts[i].FileData)
			if err != nil {
				return nil, fmt.Errorf("failed to load receipt file data: %w", err)
			}
		}
	}

	return receipts, nil
}

// DeleteReceipt removes a receipt.
func (r *PgxReceiptRepository) DeleteReceipt(ctx context.Context, receiptID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM receipts WHERE receipt_id = $1`, receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetDriveFileID records the Drive backup file ID for a receipt.
func (r *PgxReceiptRepository) SetDriveFileID(ctx context.Context, receiptID, driveFileID string) error {
	tag, err := r.Pool.Exec(ctx,
		`UPDATE receipts SET drive_file_id = $1, updated_at = NOW() WHERE receipt_id = $2`,
		driveFileID, receiptID,
	)
	if err != nil {
		return fmt.Errorf("failed to set drive file ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UnassignReceiptsFromReport detaches every receipt of a report.
func (r *PgxReceiptRepository) UnassignReceiptsFromReport(ctx context.Context, reportID string) error {
	_, err := r.Pool.Exec(ctx,
		`UPDATE receipts SET report_id = NULL, updated_at = NOW() WHERE report_id = $1`,
		reportID,
	)
	if err != nil {
		return fmt.Errorf("failed to unassign receipts from report: %w", err)
	}
	return nil
}
