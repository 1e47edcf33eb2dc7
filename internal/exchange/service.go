package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

// Fetcher retrieves one historical conversion factor from an external source.
type Fetcher interface {
	Fetch(ctx context.Context, date, from, to string) (decimal.Decimal, error)
}

// RateProvider fronts a Fetcher with a RateCache. It is safe for concurrent
// use; concurrent misses for the same key may both reach the fetcher, which
// is acceptable because fetch results for a given key are identical and the
// last write wins.
type RateProvider struct {
	cache   *RateCache
	fetcher Fetcher
}

// NewRateProvider creates a RateProvider over the given cache and fetcher.
func NewRateProvider(cache *RateCache, fetcher Fetcher) *RateProvider {
	return &RateProvider{cache: cache, fetcher: fetcher}
}

// GetRate returns the conversion factor for (date, from, to), consulting the
// cache first and delegating to the fetcher on miss or staleness. Identity
// pairs return 1 without touching the cache or the network. Fetch errors
// propagate untranslated so callers can distinguish the two upstream failure
// shapes.
func (p *RateProvider) GetRate(ctx context.Context, date, from, to string) (decimal.Decimal, error) {
	if !NeedsConversion(from, to) {
		return decimal.NewFromInt(1), nil
	}

	if rate, ok := p.cache.Get(date, from, to); ok {
		return rate, nil
	}

	rate, err := p.fetcher.Fetch(ctx, date, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	p.cache.Put(date, from, to, rate)
	return rate, nil
}
