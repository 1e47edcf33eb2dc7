package services

import (
	"context"
	"fmt"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
)

// recentReceiptsLimit caps the dashboard's recent-activity list.
const recentReceiptsLimit = 5

// dashboardService assembles the landing-page overview.
type dashboardService struct {
	dashboardRepo ports.DashboardRepository
	receiptRepo   ports.ReceiptRepository
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(dashboardRepo ports.DashboardRepository, receiptRepo ports.ReceiptRepository) portssvc.DashboardSvcFacade {
	return &dashboardService{dashboardRepo: dashboardRepo, receiptRepo: receiptRepo}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetSummary returns receipt and report counts, the most recent receipts and
// the per-category spending breakdown.
func (s *dashboardService) GetSummary(ctx context.Context) (*domain.DashboardSummary, error) {
	totalReceipts, err := s.dashboardRepo.CountReceipts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count receipts: %w", err)
	}

	draftReports, err := s.dashboardRepo.CountReportsByStatus(ctx, domain.ReportStatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to count draft reports: %w", err)
	}

	recent, _, err := s.receiptRepo.ListReceipts(ctx, ports.ReceiptFilter{Limit: recentReceiptsLimit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent receipts: %w", err)
	}

	breakdown, err := s.dashboardRepo.GetCategoryBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	return &domain.DashboardSummary{
		TotalReceipts:     totalReceipts,
		DraftReports:      draftReports,
		RecentReceipts:    recent,
		CategoryBreakdown: breakdown,
	}, nil
}
