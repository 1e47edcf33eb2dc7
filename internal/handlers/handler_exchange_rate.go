package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/exchange"
	"github.com/receiptly/receipt_management_app/internal/middleware"
)

// exchangeRateHandler handles HTTP requests for rate lookups and the
// currency catalogue.
type exchangeRateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newExchangeRateHandler(rs portssvc.RateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rg.GET("/exchange-rates", h.getExchangeRate)
	rg.GET("/currencies", h.listCurrencies)
}

// getExchangeRate godoc
// @Summary Get a historical exchange rate
// @Description Returns the conversion factor for a currency pair on a date. An identity pair always returns 1.
// @Tags exchange-rates
// @Produce json
// @Param date query string true "Rate date (YYYY-MM-DD)"
// @Param from query string true "Source currency (3-letter code)"
// @Param to query string true "Target currency (3-letter code)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not covered by the rate source"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GetExchangeRateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rate, err := h.rateService.GetExchangeRate(c.Request.Context(), req.Date, req.From, req.To)
	if err != nil {
		var unavailable *exchange.RateUnavailableError
		var svcErr *exchange.RateServiceError
		switch {
		case errors.As(err, &unavailable):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &svcErr):
			logger.Warn("Rate source error", slog.Int("upstream_status", svcErr.Status))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Exchange rate service unavailable"})
		default:
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Exchange rate service unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ExchangeRateResponse{
		Rate: rate,
		From: req.From,
		To:   req.To,
		Date: req.Date,
	})
}

// listCurrencies godoc
// @Summary List supported currencies
// @Tags exchange-rates
// @Produce json
// @Success 200 {object} map[string]string "Code to display name"
// @Failure 502 {object} map[string]string "Rate source unavailable"
// @Security BearerAuth
// @Router /currencies [get]
func (h *exchangeRateHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.rateService.ListCurrencies(c.Request.Context())
	if err != nil {
		logger.Warn("Failed to list currencies", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Exchange rate service unavailable"})
		return
	}

	c.JSON(http.StatusOK, currencies)
}
