package services

import (
	"context"

	"github.com/shopspring/decimal"

	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/exchange"
)

// rateService adapts the exchange package to the RateSvcFacade.
type rateService struct {
	provider *exchange.RateProvider
	client   *exchange.Client
}

// NewRateService creates the rate service over a cached provider and the
// frankfurter client used for the currency catalogue.
func NewRateService(provider *exchange.RateProvider, client *exchange.Client) portssvc.RateSvcFacade {
	return &rateService{provider: provider, client: client}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

// GetExchangeRate returns the conversion factor for the given date and
// currency pair. Errors are the exchange package's typed errors.
func (s *rateService) GetExchangeRate(ctx context.Context, date, from, to string) (decimal.Decimal, error) {
	return s.provider.GetRate(ctx, date, from, to)
}

// ListCurrencies returns the supported currency catalogue.
func (s *rateService) ListCurrencies(ctx context.Context) (map[string]string, error) {
	return s.client.Currencies(ctx)
}
