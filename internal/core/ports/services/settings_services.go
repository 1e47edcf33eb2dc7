package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// SettingsSvcFacade defines operations on the singleton settings record.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.Settings, error)
	// AllocateInvoiceNumber atomically hands out the next invoice number,
	// formatted as {prefix}{number padded to four digits}.
	AllocateInvoiceNumber(ctx context.Context) (string, error)
}
