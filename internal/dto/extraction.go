package dto

import "github.com/receiptly/receipt_management_app/internal/core/domain"

// ExtractReceiptRequest carries the uploaded document for AI extraction.
// FileData arrives base64-encoded in JSON.
type ExtractReceiptRequest struct {
	FileData []byte `json:"fileData" binding:"required"`
	MimeType string `json:"mimeType" binding:"required"`
}

// InterpretVoiceRequest carries a recorded voice command plus the current
// form state it should be applied against.
type InterpretVoiceRequest struct {
	AudioData     []byte         `json:"audioData" binding:"required"`
	AudioMimeType string         `json:"audioMimeType" binding:"required"`
	CurrentFields map[string]any `json:"currentFields"`
}

// VoiceFieldUpdatesResponse is the sparse field-update map produced by voice
// interpretation.
type VoiceFieldUpdatesResponse struct {
	Updates domain.VoiceFieldUpdates `json:"updates"`
}
