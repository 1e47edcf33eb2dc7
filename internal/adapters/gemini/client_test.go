package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

type stubSettings struct {
	apiKey string
}

func (s *stubSettings) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return &domain.Settings{GeminiAPIKey: s.apiKey}, nil
}

// modelReply wraps text in the generateContent response envelope.
func modelReply(text string) string {
	reply := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(reply)
	return string(data)
}

func TestExtractReceipt_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		require.NotNil(t, req.Contents[0].Parts[0].InlineData)
		assert.Equal(t, "image/jpeg", req.Contents[0].Parts[0].InlineData.MimeType)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(modelReply(`{
			"vendorName": "Hotel Berlin",
			"date": "2024-03-15",
			"lineItems": [{"description": "Room", "amount": 95.00}],
			"tax": 5.00,
			"total": 100.00,
			"currency": "EUR",
			"suggestedCategory": "Accommodation"
		}`)))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "test-key"})
	extracted, err := client.ExtractReceipt(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")

	require.NoError(t, err)
	assert.Equal(t, "Hotel Berlin", extracted.VendorName)
	assert.Equal(t, "2024-03-15", extracted.Date)
	assert.Equal(t, "EUR", extracted.Currency)
	assert.Equal(t, "100", extracted.Total.String())
	assert.Equal(t, "Accommodation", extracted.SuggestedCategory)
}

func TestExtractReceipt_NoAPIKey(t *testing.T) {
	client := NewClient("http://unused", 5*time.Second, &stubSettings{})

	_, err := client.ExtractReceipt(context.Background(), []byte{0x01}, "image/png")

	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExtractReceipt_RejectedKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "bad-key"})
	_, err := client.ExtractReceipt(context.Background(), []byte{0x01}, "image/png")

	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestExtractReceipt_ServiceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "test-key"})
	_, err := client.ExtractReceipt(context.Background(), []byte{0x01}, "image/png")

	require.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestExtractReceipt_MalformedModelOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(modelReply(`this is not json`)))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "test-key"})
	_, err := client.ExtractReceipt(context.Background(), []byte{0x01}, "image/png")

	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestExtractReceipt_IncompleteRecordFailsValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// Valid JSON but missing vendorName and currency.
		_, _ = w.Write([]byte(modelReply(`{"date": "2024-03-15", "total": 10.00}`)))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "test-key"})
	_, err := client.ExtractReceipt(context.Background(), []byte{0x01}, "image/png")

	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestExtractReceipt_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "test-key"})
	_, err := client.ExtractReceipt(context.Background(), []byte{0x01}, "image/png")

	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestInterpretVoice_SparseUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents[0].Parts, 2)
		assert.Contains(t, req.Contents[0].Parts[1].Text, `"vendorName":"Hotel Berlin"`)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(modelReply(`{"total": 120.00, "notes": "late checkout"}`)))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, &stubSettings{apiKey: "test-key"})
	updates, err := client.InterpretVoice(context.Background(), []byte{0x01}, "audio/webm",
		map[string]any{"vendorName": "Hotel Berlin"})

	require.NoError(t, err)
	assert.Len(t, updates, 2)
	assert.Equal(t, "late checkout", updates["notes"])
	assert.NotContains(t, updates, "vendorName")
}
