package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/receiptly/receipt_management_app/internal/adapters/gemini"
	"github.com/receiptly/receipt_management_app/internal/apperrors"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/middleware"
)

// extractionHandler handles AI extraction requests.
type extractionHandler struct {
	extractionService portssvc.ExtractionSvcFacade
}

func newExtractionHandler(es portssvc.ExtractionSvcFacade) *extractionHandler {
	return &extractionHandler{extractionService: es}
}

// registerExtractionRoutes registers routes related to AI extraction.
func registerExtractionRoutes(rg *gin.RouterGroup, extractionService portssvc.ExtractionSvcFacade) {
	h := newExtractionHandler(extractionService)

	ai := rg.Group("/ai")
	{
		ai.POST("/extract", h.extractReceipt)
		ai.POST("/voice", h.interpretVoice)
	}
}

// extractionError maps the extraction collaborator's failures to HTTP
// statuses.
func extractionError(c *gin.Context, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, gemini.ErrUnauthorized):
		logger.Warn("Gemini rejected the configured API key")
		c.JSON(http.StatusBadRequest, gin.H{"error": "The configured Gemini API key was rejected"})
	case errors.Is(err, gemini.ErrMalformedResponse):
		logger.Warn("Gemini returned a malformed response", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction service returned an unusable response"})
	case errors.Is(err, gemini.ErrServiceUnavailable):
		logger.Warn("Gemini unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Extraction service unavailable"})
	default:
		logger.Error("Extraction failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Extraction failed"})
	}
}

// extractReceipt godoc
// @Summary Extract receipt data from a document
// @Description Reads an uploaded receipt image or PDF into a structured record using the configured Gemini API key
// @Tags ai
// @Accept json
// @Produce json
// @Param document body dto.ExtractReceiptRequest true "Base64 file data and MIME type"
// @Success 200 {object} domain.ExtractedReceipt
// @Failure 400 {object} map[string]string "No API key configured or key rejected"
// @Failure 502 {object} map[string]string "Extraction service unavailable"
// @Security BearerAuth
// @Router /ai/extract [post]
func (h *extractionHandler) extractReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ExtractReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	extracted, err := h.extractionService.ExtractReceipt(c.Request.Context(), req.FileData, req.MimeType)
	if err != nil {
		extractionError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, extracted)
}

// interpretVoice godoc
// @Summary Interpret a voice command against the receipt form
// @Description Turns a recorded command into the sparse set of form fields it asks to change
// @Tags ai
// @Accept json
// @Produce json
// @Param command body dto.InterpretVoiceRequest true "Base64 audio, MIME type and current form values"
// @Success 200 {object} dto.VoiceFieldUpdatesResponse
// @Failure 400 {object} map[string]string "No API key configured or key rejected"
// @Failure 502 {object} map[string]string "Extraction service unavailable"
// @Security BearerAuth
// @Router /ai/voice [post]
func (h *extractionHandler) interpretVoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InterpretVoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updates, err := h.extractionService.InterpretVoice(c.Request.Context(), req.AudioData, req.AudioMimeType, req.CurrentFields)
	if err != nil {
		extractionError(c, err, logger)
		return
	}

	c.JSON(http.StatusOK, dto.VoiceFieldUpdatesResponse{Updates: updates})
}
