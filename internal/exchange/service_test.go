package exchange_test

import (
	"context"
	"testing"
	"time"

	"github.com/receiptly/receipt_management_app/internal/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock Fetcher ---
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, date, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, date, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RateProviderTestSuite struct {
	suite.Suite
	mockFetcher *MockFetcher
	provider    *exchange.RateProvider
}

func (suite *RateProviderTestSuite) SetupTest() {
	suite.mockFetcher = new(MockFetcher)
	cache := exchange.NewRateCache(1000, 24*time.Hour)
	suite.provider = exchange.NewRateProvider(cache, suite.mockFetcher)
}

func (suite *RateProviderTestSuite) TestGetRate_IdentityPair() {
	rate, err := suite.provider.GetRate(context.Background(), "2024-03-01", "USD", "USD")

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1).Equal(rate))
	suite.mockFetcher.AssertNotCalled(suite.T(), "Fetch")
}

func (suite *RateProviderTestSuite) TestGetRate_SecondCallHitsCache() {
	ctx := context.Background()
	fetched := decimal.RequireFromString("1.0854")
	suite.mockFetcher.On("Fetch", ctx, "2024-03-01", "EUR", "USD").Return(fetched, nil).Once()

	first, err := suite.provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(fetched.Equal(first))

	second, err := suite.provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	suite.Require().NoError(err)
	suite.True(fetched.Equal(second))

	// At most one underlying fetch for the same key.
	suite.mockFetcher.AssertNumberOfCalls(suite.T(), "Fetch", 1)
}

func (suite *RateProviderTestSuite) TestGetRate_DistinctKeysFetchSeparately() {
	ctx := context.Background()
	suite.mockFetcher.On("Fetch", ctx, "2024-03-01", "EUR", "USD").Return(decimal.RequireFromString("1.0854"), nil).Once()
	suite.mockFetcher.On("Fetch", ctx, "2024-03-02", "EUR", "USD").Return(decimal.RequireFromString("1.0861"), nil).Once()

	_, err := suite.provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	suite.Require().NoError(err)
	_, err = suite.provider.GetRate(ctx, "2024-03-02", "EUR", "USD")
	suite.Require().NoError(err)

	suite.mockFetcher.AssertExpectations(suite.T())
}

func (suite *RateProviderTestSuite) TestGetRate_FetchErrorPropagatesAndIsNotCached() {
	ctx := context.Background()
	serviceErr := &exchange.RateServiceError{Status: 503}
	suite.mockFetcher.On("Fetch", ctx, "2024-03-01", "EUR", "USD").Return(decimal.Decimal{}, serviceErr).Once()
	suite.mockFetcher.On("Fetch", ctx, "2024-03-01", "EUR", "USD").Return(decimal.RequireFromString("1.0854"), nil).Once()

	_, err := suite.provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	var gotServiceErr *exchange.RateServiceError
	suite.Require().ErrorAs(err, &gotServiceErr)
	suite.Equal(503, gotServiceErr.Status)

	// Failure was not cached; the next call fetches again and succeeds.
	rate, err := suite.provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	suite.Require().NoError(err)
	suite.Equal("1.0854", rate.String())
}

func (suite *RateProviderTestSuite) TestGetRate_CapacityEvictionCausesRefetch() {
	ctx := context.Background()
	cache := exchange.NewRateCache(2, 24*time.Hour)
	provider := exchange.NewRateProvider(cache, suite.mockFetcher)

	one := decimal.RequireFromString("1.1")
	suite.mockFetcher.On("Fetch", ctx, "2024-03-01", "EUR", "USD").Return(one, nil).Twice()
	suite.mockFetcher.On("Fetch", ctx, "2024-03-02", "EUR", "USD").Return(one, nil).Once()
	suite.mockFetcher.On("Fetch", ctx, "2024-03-03", "EUR", "USD").Return(one, nil).Once()

	_, err := provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	suite.Require().NoError(err)
	_, err = provider.GetRate(ctx, "2024-03-02", "EUR", "USD")
	suite.Require().NoError(err)
	// Third distinct key evicts the first.
	_, err = provider.GetRate(ctx, "2024-03-03", "EUR", "USD")
	suite.Require().NoError(err)
	// Evicted key misses and refetches.
	_, err = provider.GetRate(ctx, "2024-03-01", "EUR", "USD")
	suite.Require().NoError(err)

	suite.mockFetcher.AssertExpectations(suite.T())
}

func TestRateProviderTestSuite(t *testing.T) {
	suite.Run(t, new(RateProviderTestSuite))
}

func TestRateProvider_ConcurrentAccess(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, mock.Anything, "EUR", "USD").Return(decimal.RequireFromString("1.0854"), nil)

	provider := exchange.NewRateProvider(exchange.NewRateCache(100, 24*time.Hour), fetcher)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				_, err := provider.GetRate(context.Background(), "2024-03-01", "EUR", "USD")
				require.NoError(t, err)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
