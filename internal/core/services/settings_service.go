package services

import (
	"context"
	"fmt"
	"time"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// settingsService handles the singleton settings record.
type settingsService struct {
	settingsRepo ports.SettingsRepository
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo ports.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsService{settingsRepo: settingsRepo}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

// GetSettings returns the settings record, created with defaults on first
// access.
func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial update to the settings record.
func (s *settingsService) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings for update: %w", err)
	}

	if req.GeminiAPIKey != nil {
		settings.GeminiAPIKey = *req.GeminiAPIKey
	}
	if req.DefaultCurrency != nil {
		settings.DefaultCurrency = *req.DefaultCurrency
	}
	if req.InvoiceNumberPrefix != nil {
		settings.InvoiceNumberPrefix = *req.InvoiceNumberPrefix
	}
	if req.NextInvoiceNumber != nil {
		settings.NextInvoiceNumber = *req.NextInvoiceNumber
	}
	if req.BusinessName != nil {
		settings.BusinessName = *req.BusinessName
	}
	if req.BusinessAddress != nil {
		settings.BusinessAddress = *req.BusinessAddress
	}
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// AllocateInvoiceNumber atomically claims the next invoice number, formatted
// with the configured prefix and zero-padded to four digits.
func (s *settingsService) AllocateInvoiceNumber(ctx context.Context) (string, error) {
	prefix, number, err := s.settingsRepo.AllocateInvoiceNumber(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, number), nil
}
