package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// ReportSvcFacade defines the expense-report business operations.
type ReportSvcFacade interface {
	CreateReport(ctx context.Context, req dto.CreateReportRequest) (*domain.Report, error)
	// GetReportWithReceipts returns the report together with its receipts,
	// newest first.
	GetReportWithReceipts(ctx context.Context, reportID string) (*domain.Report, []domain.Receipt, error)
	// ListReports decorates every report with receipt count and total amount.
	ListReports(ctx context.Context) ([]domain.ReportSummary, error)
	UpdateReport(ctx context.Context, reportID string, req dto.UpdateReportRequest) (*domain.Report, error)
	// DeleteReport unassigns the report's receipts before removing it.
	DeleteReport(ctx context.Context, reportID string) error
}
