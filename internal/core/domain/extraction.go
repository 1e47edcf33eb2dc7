package domain

import "github.com/shopspring/decimal"

// ExtractedReceipt is the validated structured record returned by the AI
// extraction collaborator for a receipt image or PDF.
type ExtractedReceipt struct {
	VendorName        string           `json:"vendorName" validate:"required"`
	Date              string           `json:"date" validate:"required,datetime=2006-01-02"`
	LineItems         []LineItem       `json:"lineItems"`
	Subtotal          *decimal.Decimal `json:"subtotal,omitempty"`
	Tax               *decimal.Decimal `json:"tax,omitempty"`
	Total             decimal.Decimal  `json:"total" validate:"required"`
	Currency          string           `json:"currency" validate:"required,len=3,uppercase"`
	SuggestedCategory string           `json:"suggestedCategory"`
}

// VoiceFieldUpdates is the sparse set of receipt-form fields a voice command
// asked to change. Only the mentioned fields are present.
type VoiceFieldUpdates map[string]any
