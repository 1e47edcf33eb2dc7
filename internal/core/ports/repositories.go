package ports

import (
	"context"
	"time"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// ReceiptFilter narrows receipt listings. Zero values mean "no constraint".
type ReceiptFilter struct {
	VendorSearch string
	CategoryID   string
	ReportID     string
	Unassigned   bool
	DateFrom     *time.Time
	DateTo       *time.Time
	Limit        int
	Offset       int
}

// ReceiptRepository defines the persistence operations for Receipts.
type ReceiptRepository interface {
	SaveReceipt(ctx context.Context, receipt domain.Receipt) error
	UpdateReceipt(ctx context.Context, receipt domain.Receipt) error
	FindReceiptByID(ctx context.Context, receiptID string, withFileData bool) (*domain.Receipt, error)
	// ListReceipts never loads file bytes; they are fetched per receipt.
	ListReceipts(ctx context.Context, filter ReceiptFilter) ([]domain.Receipt, int, error)
	FindReceiptsByIDs(ctx context.Context, receiptIDs []string, withFileData bool) ([]domain.Receipt, error)
	DeleteReceipt(ctx context.Context, receiptID string) error
	SetDriveFileID(ctx context.Context, receiptID, driveFileID string) error
	UnassignReceiptsFromReport(ctx context.Context, reportID string) error
}

// CategoryRepository defines persistence operations for Categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	UpdateCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CountCategories(ctx context.Context) (int, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// ReportRepository defines persistence operations for Reports.
type ReportRepository interface {
	SaveReport(ctx context.Context, report domain.Report) error
	UpdateReport(ctx context.Context, report domain.Report) error
	FindReportByID(ctx context.Context, reportID string) (*domain.Report, error)
	ListReports(ctx context.Context) ([]domain.Report, error)
	DeleteReport(ctx context.Context, reportID string) error
}

// SettingsRepository defines persistence operations for the singleton
// Settings record.
type SettingsRepository interface {
	// GetSettings returns the singleton row, creating it with defaults on
	// first access.
	GetSettings(ctx context.Context) (*domain.Settings, error)
	SaveSettings(ctx context.Context, settings domain.Settings) error
	// AllocateInvoiceNumber atomically increments the invoice counter and
	// returns the number it held before the increment.
	AllocateInvoiceNumber(ctx context.Context) (prefix string, number int, err error)
}

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	ReceiptRepo   ReceiptRepository
	CategoryRepo  CategoryRepository
	ReportRepo    ReportRepository
	SettingsRepo  SettingsRepository
	DashboardRepo DashboardRepository
}

// DashboardRepository defines the aggregate queries behind the dashboard.
type DashboardRepository interface {
	CountReceipts(ctx context.Context) (int, error)
	CountReportsByStatus(ctx context.Context, status domain.ReportStatus) (int, error)
	GetCategoryBreakdown(ctx context.Context) ([]domain.CategoryBreakdownRow, error)
}
