package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/exchange"
)

// --- Mock RateSvcFacade ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetExchangeRate(ctx context.Context, date, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, date, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateService) ListCurrencies(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockRateSvc *MockRateService
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockRateSvc = new(MockRateService)

	v1 := suite.router.Group("/api/v1")
	registerExchangeRateRoutes(v1, suite.mockRateSvc)
}

func (suite *ExchangeRateHandlerTestSuite) serve(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ExchangeRateHandlerTestSuite) TestGetExchangeRate_Success() {
	rate := decimal.RequireFromString("1.0854")
	suite.mockRateSvc.On("GetExchangeRate", mock.Anything, "2024-03-15", "EUR", "USD").
		Return(rate, nil).Once()

	w := suite.serve("/api/v1/exchange-rates?date=2024-03-15&from=EUR&to=USD")

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Rate.Equal(rate))
	suite.Equal("EUR", resp.From)
	suite.Equal("USD", resp.To)
	suite.Equal("2024-03-15", resp.Date)

	suite.mockRateSvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateHandlerTestSuite) TestGetExchangeRate_InvalidQuery() {
	w := suite.serve("/api/v1/exchange-rates?date=15-03-2024&from=EUR&to=USD")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "GetExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateHandlerTestSuite) TestGetExchangeRate_CurrencyNotCovered() {
	suite.mockRateSvc.On("GetExchangeRate", mock.Anything, "2024-03-15", "EUR", "XXX").
		Return(decimal.Zero, &exchange.RateUnavailableError{Currency: "XXX"}).Once()

	w := suite.serve("/api/v1/exchange-rates?date=2024-03-15&from=EUR&to=XXX")

	suite.Equal(http.StatusNotFound, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp["error"], "XXX")
}

func (suite *ExchangeRateHandlerTestSuite) TestGetExchangeRate_SourceUnavailable() {
	suite.mockRateSvc.On("GetExchangeRate", mock.Anything, "2024-03-15", "EUR", "USD").
		Return(decimal.Zero, &exchange.RateServiceError{Status: http.StatusServiceUnavailable}).Once()

	w := suite.serve("/api/v1/exchange-rates?date=2024-03-15&from=EUR&to=USD")

	suite.Equal(http.StatusBadGateway, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("Exchange rate service unavailable", resp["error"])
}

func (suite *ExchangeRateHandlerTestSuite) TestListCurrencies_Success() {
	currencies := map[string]string{"EUR": "Euro", "USD": "United States Dollar"}
	suite.mockRateSvc.On("ListCurrencies", mock.Anything).Return(currencies, nil).Once()

	w := suite.serve("/api/v1/currencies")

	suite.Equal(http.StatusOK, w.Code)

	var resp map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(currencies, resp)
}

func (suite *ExchangeRateHandlerTestSuite) TestListCurrencies_SourceUnavailable() {
	suite.mockRateSvc.On("ListCurrencies", mock.Anything).
		Return(nil, &exchange.RateServiceError{Status: http.StatusBadGateway}).Once()

	w := suite.serve("/api/v1/currencies")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func TestExchangeRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
