package domain

import "time"

// DriveTokens is the OAuth token triple for the connected Google Drive
// account. The three fields are persisted and replaced together.
type DriveTokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Expiry       time.Time `json:"expiry"`
}

// Settings is the application's singleton configuration record.
type Settings struct {
	GeminiAPIKey        string       `json:"geminiApiKey,omitempty"`
	DefaultCurrency     string       `json:"defaultCurrency"`
	DriveTokens         *DriveTokens `json:"-"`
	DriveFolderID       string       `json:"driveFolderID,omitempty"`
	InvoiceNumberPrefix string       `json:"invoiceNumberPrefix"`
	NextInvoiceNumber   int          `json:"nextInvoiceNumber"`
	BusinessName        string       `json:"businessName,omitempty"`
	BusinessAddress     string       `json:"businessAddress,omitempty"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// DriveConnected reports whether a usable Drive refresh token is stored.
func (s *Settings) DriveConnected() bool {
	return s.DriveTokens != nil && s.DriveTokens.RefreshToken != ""
}
