package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateSvcFacade exposes the currency-rate engine. GetExchangeRate takes an
// ISO YYYY-MM-DD date; failures are the exchange package's typed errors and
// are never fatal to the enclosing request.
type RateSvcFacade interface {
	GetExchangeRate(ctx context.Context, date, from, to string) (decimal.Decimal, error)
	ListCurrencies(ctx context.Context) (map[string]string, error)
}
