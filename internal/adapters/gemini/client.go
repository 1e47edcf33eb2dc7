// Package gemini talks to the Google Generative Language REST API to turn
// receipt documents and voice commands into structured records.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/middleware"
)

// modelName is the Gemini model used for both extraction tasks.
const modelName = "gemini-2.0-flash"

// Typed failures of the extraction collaborator. Handlers translate these
// into HTTP statuses; nothing else in the application depends on them.
var (
	ErrUnauthorized       = errors.New("gemini: invalid or missing API key")
	ErrServiceUnavailable = errors.New("gemini: service unavailable")
	ErrMalformedResponse  = errors.New("gemini: malformed model response")
)

// settingsReader is the slice of the settings service the client needs.
type settingsReader interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
}

// Client implements the ExtractionSvcFacade over the Gemini REST API. The
// API key is read from settings on every call so key changes apply without a
// restart.
type Client struct {
	baseURL    string
	httpClient *http.Client
	settings   settingsReader
	validate   *validator.Validate
}

// NewClient creates a Gemini client.
func NewClient(baseURL string, timeout time.Duration, settings settingsReader) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		settings:   settings,
		validate:   validator.New(),
	}
}

var _ portssvc.ExtractionSvcFacade = (*Client)(nil)

// generateContent request/response shapes, reduced to the fields used.
type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type contentPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

const extractPrompt = `Analyze this receipt and extract its data as JSON with these fields:
vendorName (string), date (ISO format YYYY-MM-DD), lineItems (array of
{description, quantity, unitPrice, amount}), subtotal (number or null),
tax (number or null), total (number), currency (3-letter ISO 4217 code,
uppercase) and suggestedCategory (one of: Travel, Meals, Accommodation,
Office Supplies, Software/Subscriptions, Transportation, Communication,
Professional Services, Equipment, Miscellaneous).
Respond with the JSON object only.`

const voicePromptFmt = `The user is editing a receipt form and spoke a command.
Current form values: %s
Interpret the audio and respond with a JSON object containing only the fields
the user asked to change, using these keys where applicable: vendorName,
date (YYYY-MM-DD), total (number), notes, categoryName.
Respond with the JSON object only; use an empty object if nothing changes.`

// ExtractReceipt reads a receipt image or PDF into a validated structured
// record.
func (c *Client) ExtractReceipt(ctx context.Context, fileData []byte, mimeType string) (*domain.ExtractedReceipt, error) {
	raw, err := c.generate(ctx, []contentPart{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(fileData)}},
		{Text: extractPrompt},
	})
	if err != nil {
		return nil, err
	}

	var extracted domain.ExtractedReceipt
	if err := json.Unmarshal(raw, &extracted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := c.validate.Struct(&extracted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return &extracted, nil
}

// InterpretVoice turns a spoken command into the sparse set of form fields
// it asks to change.
func (c *Client) InterpretVoice(ctx context.Context, audioData []byte, mimeType string, currentFields map[string]any) (domain.VoiceFieldUpdates, error) {
	fieldsJSON, err := json.Marshal(currentFields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode current fields: %w", err)
	}

	raw, err := c.generate(ctx, []contentPart{
		{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(audioData)}},
		{Text: fmt.Sprintf(voicePromptFmt, fieldsJSON)},
	})
	if err != nil {
		return nil, err
	}

	var updates domain.VoiceFieldUpdates
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return updates, nil
}

// generate runs one generateContent call and returns the model's JSON text.
func (c *Client) generate(ctx context.Context, parts []contentPart) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := c.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: no Gemini API key configured", apperrors.ErrValidation)
	}

	body, err := json.Marshal(generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, modelName, settings.GeminiAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		logger.Warn("Gemini request failed", slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}
	return []byte(parsed.Candidates[0].Content.Parts[0].Text), nil
}
