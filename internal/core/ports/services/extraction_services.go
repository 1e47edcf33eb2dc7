package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// ExtractionSvcFacade is the capability interface over the AI extraction
// collaborator: one method per extraction task. The currency engine never
// depends on this interface.
type ExtractionSvcFacade interface {
	// ExtractReceipt reads a receipt image or PDF into a validated
	// structured record.
	ExtractReceipt(ctx context.Context, fileData []byte, mimeType string) (*domain.ExtractedReceipt, error)
	// InterpretVoice turns a spoken command into the sparse set of form
	// fields it asks to change.
	InterpretVoice(ctx context.Context, audioData []byte, mimeType string, currentFields map[string]any) (domain.VoiceFieldUpdates, error)
}
