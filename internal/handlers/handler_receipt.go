package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/middleware"
	"github.com/receiptly/receipt_management_app/internal/utils/pagination"
)

// receiptHandler handles HTTP requests related to receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// registerReceiptRoutes registers routes related to receipts.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:receiptID", h.getReceipt)
		receipts.PATCH("/:receiptID", h.updateReceipt)
		receipts.DELETE("/:receiptID", h.deleteReceipt)
		receipts.GET("/:receiptID/file", h.getReceiptFile)
		receipts.POST("/:receiptID/drive-backup", h.backupReceiptToDrive)
	}
}

// conversionNotice explains a silently skipped conversion: a target currency
// was requested but the saved receipt carries no conversion unit.
func conversionNotice(requestedTarget string, receipt *domain.Receipt) string {
	if requestedTarget == "" || requestedTarget == receipt.OriginalCurrency {
		return ""
	}
	if receipt.ConvertedTotal != nil {
		return ""
	}
	return fmt.Sprintf("Exchange rate for %s to %s was unavailable; the receipt was saved in its original currency.",
		receipt.OriginalCurrency, requestedTarget)
}

// createReceipt godoc
// @Summary Create a receipt
// @Description Stores a receipt with its file. When convertedCurrency is set, the server derives the conversion from the historical rate for the receipt date; if the rate is unavailable the receipt is saved unconverted and the response carries a conversionNotice.
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create receipt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create receipt"})
		return
	}

	resp := dto.ToReceiptResponse(receipt)
	resp.ConversionNotice = conversionNotice(req.ConvertedCurrency, receipt)
	c.JSON(http.StatusCreated, resp)
}

// listReceipts godoc
// @Summary List receipts
// @Description Returns a filtered, paginated receipt listing, newest first
// @Tags receipts
// @Produce json
// @Param vendor query string false "Vendor name search"
// @Param categoryID query string false "Filter by category"
// @Param reportID query string false "Filter by report"
// @Param unassigned query bool false "Only receipts not attached to a report"
// @Param dateFrom query string false "Earliest receipt date (YYYY-MM-DD)"
// @Param dateTo query string false "Latest receipt date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	page, limit, offset := pagination.Clamp(page, limit)

	filter := ports.ReceiptFilter{
		VendorSearch: c.Query("vendor"),
		CategoryID:   c.Query("categoryID"),
		ReportID:     c.Query("reportID"),
		Unassigned:   c.Query("unassigned") == "true",
		Limit:        limit,
		Offset:       offset,
	}

	var err error
	if filter.DateFrom, err = parseDateQuery(c.Query("dateFrom")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateFrom"})
		return
	}
	if filter.DateTo, err = parseDateQuery(c.Query("dateTo")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateTo"})
		return
	}

	receipts, total, err := h.receiptService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list receipts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receipts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts, total, page, limit))
}

func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// getReceipt godoc
// @Summary Get a receipt
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{receiptID} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
			return
		}
		logger.Error("Failed to get receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// getReceiptFile godoc
// @Summary Download the stored receipt file
// @Tags receipts
// @Produce octet-stream
// @Param receiptID path string true "Receipt ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{receiptID}/file [get]
func (h *receiptHandler) getReceiptFile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	fileName, fileType, data, err := h.receiptService.GetReceiptFile(c.Request.Context(), receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
			return
		}
		logger.Error("Failed to get receipt file", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt file"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", fileName))
	c.Data(http.StatusOK, fileType, data)
}

// updateReceipt godoc
// @Summary Update a receipt
// @Description Applies a partial update. Setting convertedCurrency to the empty string drops the conversion; changing the date, total, or currencies recomputes it.
// @Tags receipts
// @Accept json
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Param receipt body dto.UpdateReceiptRequest true "Fields to update"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{receiptID} [patch]
func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	var req dto.UpdateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), receiptID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receipt"})
		}
		return
	}

	resp := dto.ToReceiptResponse(receipt)
	if req.ConvertedCurrency != nil {
		resp.ConversionNotice = conversionNotice(*req.ConvertedCurrency, receipt)
	}
	c.JSON(http.StatusOK, resp)
}

// deleteReceipt godoc
// @Summary Delete a receipt
// @Tags receipts
// @Param receiptID path string true "Receipt ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{receiptID} [delete]
func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), receiptID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
			return
		}
		logger.Error("Failed to delete receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete receipt"})
		return
	}

	c.Status(http.StatusNoContent)
}

// backupReceiptToDrive godoc
// @Summary Back a receipt's file up to Google Drive
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} map[string]string "Drive file ID"
// @Failure 400 {object} map[string]string "Drive not connected"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/{receiptID}/drive-backup [post]
func (h *receiptHandler) backupReceiptToDrive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	driveFileID, err := h.receiptService.BackupReceiptToDrive(c.Request.Context(), receiptID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to back up receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to back up receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"driveFileID": driveFileID})
}
