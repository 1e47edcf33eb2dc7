package dto

import (
	"time"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// UpdateSettingsRequest defines a partial settings update. Drive tokens are
// managed exclusively by the OAuth callback and cannot be set here.
type UpdateSettingsRequest struct {
	GeminiAPIKey        *string `json:"geminiApiKey,omitempty"`
	DefaultCurrency     *string `json:"defaultCurrency,omitempty" binding:"omitempty,len=3,uppercase"`
	InvoiceNumberPrefix *string `json:"invoiceNumberPrefix,omitempty"`
	NextInvoiceNumber   *int    `json:"nextInvoiceNumber,omitempty" binding:"omitempty,min=1"`
	BusinessName        *string `json:"businessName,omitempty"`
	BusinessAddress     *string `json:"businessAddress,omitempty"`
}

// SettingsResponse defines the data returned for settings. The Gemini API key
// is masked and the Drive token triple is never exposed; only the derived
// connection flag is.
type SettingsResponse struct {
	GeminiAPIKey        string    `json:"geminiApiKey,omitempty"`
	DefaultCurrency     string    `json:"defaultCurrency"`
	DriveConnected      bool      `json:"driveConnected"`
	DriveFolderID       string    `json:"driveFolderID,omitempty"`
	InvoiceNumberPrefix string    `json:"invoiceNumberPrefix"`
	NextInvoiceNumber   int       `json:"nextInvoiceNumber"`
	BusinessName        string    `json:"businessName,omitempty"`
	BusinessAddress     string    `json:"businessAddress,omitempty"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// maskAPIKey keeps the first and last four characters of a key visible.
func maskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "..."
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// ToSettingsResponse converts domain.Settings to SettingsResponse DTO.
func ToSettingsResponse(settings *domain.Settings) SettingsResponse {
	return SettingsResponse{
		GeminiAPIKey:        maskAPIKey(settings.GeminiAPIKey),
		DefaultCurrency:     settings.DefaultCurrency,
		DriveConnected:      settings.DriveConnected(),
		DriveFolderID:       settings.DriveFolderID,
		InvoiceNumberPrefix: settings.InvoiceNumberPrefix,
		NextInvoiceNumber:   settings.NextInvoiceNumber,
		BusinessName:        settings.BusinessName,
		BusinessAddress:     settings.BusinessAddress,
		UpdatedAt:           settings.UpdatedAt,
	}
}
