package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// DashboardSvcFacade assembles the landing-page overview.
type DashboardSvcFacade interface {
	GetSummary(ctx context.Context) (*domain.DashboardSummary, error)
}
