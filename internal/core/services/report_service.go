package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/exchange"
	"github.com/receiptly/receipt_management_app/internal/middleware"
)

// reportService handles expense-report business logic.
type reportService struct {
	reportRepo  ports.ReportRepository
	receiptRepo ports.ReceiptRepository
}

// NewReportService creates a new report service.
func NewReportService(reportRepo ports.ReportRepository, receiptRepo ports.ReceiptRepository) portssvc.ReportSvcFacade {
	return &reportService{reportRepo: reportRepo, receiptRepo: receiptRepo}
}

var _ portssvc.ReportSvcFacade = (*reportService)(nil)

// CreateReport creates a new draft report.
func (s *reportService) CreateReport(ctx context.Context, req dto.CreateReportRequest) (*domain.Report, error) {
	now := time.Now()
	report := domain.Report{
		ReportID:    uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.ReportStatusDraft,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	var err error
	if report.DateFrom, err = parseOptionalDate(req.DateFrom); err != nil {
		return nil, err
	}
	if report.DateTo, err = parseOptionalDate(req.DateTo); err != nil {
		return nil, err
	}

	if err := s.reportRepo.SaveReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
	}
	return &date, nil
}

// GetReportWithReceipts returns a report and its receipts, newest first.
func (s *reportService) GetReportWithReceipts(ctx context.Context, reportID string) (*domain.Report, []domain.Receipt, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get report: %w", err)
	}

	receipts, _, err := s.receiptRepo.ListReceipts(ctx, ports.ReceiptFilter{ReportID: reportID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list report receipts: %w", err)
	}
	return report, receipts, nil
}

// ListReports decorates every report with its receipt count and total
// amount. Totals use each receipt's display amount, converted where a
// conversion unit exists, rounded to two decimal places.
func (s *reportService) ListReports(ctx context.Context) ([]domain.ReportSummary, error) {
	reports, err := s.reportRepo.ListReports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	summaries := make([]domain.ReportSummary, 0, len(reports))
	for _, report := range reports {
		receipts, count, err := s.receiptRepo.ListReceipts(ctx, ports.ReceiptFilter{ReportID: report.ReportID})
		if err != nil {
			return nil, fmt.Errorf("failed to summarize report %s: %w", report.ReportID, err)
		}

		total := decimal.Zero
		for i := range receipts {
			amount, _ := receipts[i].DisplayTotal()
			total = total.Add(amount)
		}

		summaries = append(summaries, domain.ReportSummary{
			Report:       report,
			ReceiptCount: count,
			TotalAmount:  exchange.Round2(total),
		})
	}
	return summaries, nil
}

// UpdateReport applies a partial update to a report.
func (s *reportService) UpdateReport(ctx context.Context, reportID string, req dto.UpdateReportRequest) (*domain.Report, error) {
	report, err := s.reportRepo.FindReportByID(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report for update: %w", err)
	}

	if req.Name != nil {
		report.Name = *req.Name
	}
	if req.Description != nil {
		report.Description = *req.Description
	}
	if req.Status != nil {
		report.Status = domain.ReportStatus(*req.Status)
	}
	if req.DateFrom != nil {
		if report.DateFrom, err = parseOptionalDate(*req.DateFrom); err != nil {
			return nil, err
		}
	}
	if req.DateTo != nil {
		if report.DateTo, err = parseOptionalDate(*req.DateTo); err != nil {
			return nil, err
		}
	}
	report.UpdatedAt = time.Now()

	if err := s.reportRepo.UpdateReport(ctx, *report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	return report, nil
}

// DeleteReport unassigns the report's receipts and removes the report. The
// receipts themselves are kept.
func (s *reportService) DeleteReport(ctx context.Context, reportID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.receiptRepo.UnassignReceiptsFromReport(ctx, reportID); err != nil {
		return fmt.Errorf("failed to unassign receipts: %w", err)
	}
	if err := s.reportRepo.DeleteReport(ctx, reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	logger.Info("Report deleted", slog.String("report_id", reportID))
	return nil
}
