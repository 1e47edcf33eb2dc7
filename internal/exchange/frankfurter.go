package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches historical conversion rates from a Frankfurter-compatible
// API. It performs no retries; retry policy, if any, belongs to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client

	currenciesMu sync.Mutex
	currencies   map[string]string // process-lifetime cache, codes never change
}

// NewClient creates a rate source client against baseURL, bounding every
// request by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type ratesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

// Fetch retrieves the conversion factor from one unit of the from currency
// into the to currency for the given ISO date (YYYY-MM-DD). A same-currency
// pair is a closed-form identity and returns 1 without any network access.
// Upstream failure shapes are distinguished: a non-2xx response yields a
// *RateServiceError, a success response lacking the target currency yields a
// *RateUnavailableError.
func (c *Client) Fetch(ctx context.Context, date, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	reqURL := fmt.Sprintf("%s/%s?from=%s&to=%s", c.baseURL, url.PathEscape(date), url.QueryEscape(from), url.QueryEscape(to))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to build rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to fetch exchange rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decimal.Decimal{}, &RateServiceError{Status: resp.StatusCode}
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to decode rate response: %w", err)
	}

	rate, ok := body.Rates[to]
	if !ok || rate.IsZero() {
		return decimal.Decimal{}, &RateUnavailableError{Currency: to}
	}

	return rate, nil
}

// Currencies returns the code-to-name map of currencies the rate source
// supports. The result is cached for the process lifetime.
func (c *Client) Currencies(ctx context.Context) (map[string]string, error) {
	c.currenciesMu.Lock()
	defer c.currenciesMu.Unlock()

	if c.currencies != nil {
		return c.currencies, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/currencies", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build currencies request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch currencies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RateServiceError{Status: resp.StatusCode}
	}

	var currencies map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&currencies); err != nil {
		return nil, fmt.Errorf("failed to decode currencies response: %w", err)
	}

	c.currencies = currencies
	return c.currencies, nil
}
