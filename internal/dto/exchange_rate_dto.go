package dto

import "github.com/shopspring/decimal"

// GetExchangeRateRequest defines the query parameters for a rate lookup.
type GetExchangeRateRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
	From string `form:"from" binding:"required,len=3,uppercase"`
	To   string `form:"to" binding:"required,len=3,uppercase"`
}

// ExchangeRateResponse defines the API response for a rate lookup.
type ExchangeRateResponse struct {
	Rate decimal.Decimal `json:"rate"`
	From string          `json:"from"`
	To   string          `json:"to"`
	Date string          `json:"date"`
}
