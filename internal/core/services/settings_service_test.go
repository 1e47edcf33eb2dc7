package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/core/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

func (m *MockSettingsRepository) AllocateInvoiceNumber(ctx context.Context) (string, int, error) {
	args := m.Called(ctx)
	return args.String(0), args.Int(1), args.Error(2)
}

// --- Test Suite ---
type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingsRepository
	service  portssvc.SettingsSvcFacade
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.service = services.NewSettingsService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *SettingsServiceTestSuite) TestUpdateSettings_PartialUpdate() {
	ctx := context.Background()
	existing := &domain.Settings{
		DefaultCurrency:     "USD",
		InvoiceNumberPrefix: "INV-",
		NextInvoiceNumber:   1,
	}
	newCurrency := "EUR"
	newKey := "AIzaSyTestKey1234"

	suite.mockRepo.On("GetSettings", ctx).Return(existing, nil).Once()
	suite.mockRepo.On("SaveSettings", ctx, mock.MatchedBy(func(s domain.Settings) bool {
		return s.DefaultCurrency == "EUR" && s.GeminiAPIKey == newKey && s.InvoiceNumberPrefix == "INV-"
	})).Return(nil).Once()

	settings, err := suite.service.UpdateSettings(ctx, dto.UpdateSettingsRequest{
		DefaultCurrency: &newCurrency,
		GeminiAPIKey:    &newKey,
	})

	suite.Require().NoError(err)
	suite.Equal("EUR", settings.DefaultCurrency)
	suite.Equal(newKey, settings.GeminiAPIKey)
	suite.Equal("INV-", settings.InvoiceNumberPrefix)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestAllocateInvoiceNumber_Formatting() {
	ctx := context.Background()

	suite.mockRepo.On("AllocateInvoiceNumber", ctx).Return("INV-", 7, nil).Once()

	invoiceNumber, err := suite.service.AllocateInvoiceNumber(ctx)

	suite.Require().NoError(err)
	suite.Equal("INV-0007", invoiceNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestAllocateInvoiceNumber_WidePadding() {
	ctx := context.Background()

	suite.mockRepo.On("AllocateInvoiceNumber", ctx).Return("2024-", 12345, nil).Once()

	invoiceNumber, err := suite.service.AllocateInvoiceNumber(ctx)

	suite.Require().NoError(err)
	suite.Equal("2024-12345", invoiceNumber)
}

func (suite *SettingsServiceTestSuite) TestAllocateInvoiceNumber_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("AllocateInvoiceNumber", ctx).Return("", 0, assert.AnError).Once()

	invoiceNumber, err := suite.service.AllocateInvoiceNumber(ctx)

	suite.Require().Error(err)
	suite.Empty(invoiceNumber)
	suite.ErrorIs(err, assert.AnError)
}

func TestSettingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
