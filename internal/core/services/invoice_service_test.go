package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/core/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// --- Mock SettingsSvcFacade ---
type MockSettingsSvc struct {
	mock.Mock
}

func (m *MockSettingsSvc) GetSettings(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsSvc) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settings), args.Error(1)
}

func (m *MockSettingsSvc) AllocateInvoiceNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockReceiptRepo  *MockReceiptRepository
	mockCategoryRepo *MockCategoryRepository
	mockSettingsSvc  *MockSettingsSvc
	service          portssvc.InvoiceSvcFacade
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockSettingsSvc = new(MockSettingsSvc)
	suite.service = services.NewInvoiceService(suite.mockReceiptRepo, suite.mockCategoryRepo, suite.mockSettingsSvc)
}

func (suite *InvoiceServiceTestSuite) sampleReceipts(categoryID string) []domain.Receipt {
	return []domain.Receipt{
		{
			ReceiptID:        uuid.NewString(),
			VendorName:       "Hotel Berlin",
			Date:             time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			Total:            decimal.RequireFromString("100.00"),
			OriginalCurrency: "EUR",
			CategoryID:       categoryID,
		},
		{
			ReceiptID:        uuid.NewString(),
			VendorName:       "Taxi Mitte",
			Date:             time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
			Total:            decimal.RequireFromString("23.50"),
			OriginalCurrency: "EUR",
		},
	}
}

// --- Test Cases ---

func (suite *InvoiceServiceTestSuite) TestGenerateDocument_ExpenseReport() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	receipts := suite.sampleReceipts(categoryID)
	ids := []string{receipts[0].ReceiptID, receipts[1].ReceiptID}

	suite.mockReceiptRepo.On("FindReceiptsByIDs", ctx, ids, true).Return(receipts, nil).Once()
	suite.mockCategoryRepo.On("ListCategories", ctx).
		Return([]domain.Category{{CategoryID: categoryID, Name: "Accommodation"}}, nil).Once()

	data, fileName, err := suite.service.GenerateDocument(ctx, dto.GenerateInvoiceRequest{
		Type:       dto.InvoiceTypeExpenseReport,
		ReceiptIDs: ids,
	})

	suite.Require().NoError(err)
	suite.NotEmpty(data)
	suite.Equal("%PDF", string(data[:4]))
	suite.Contains(fileName, "expense-report-")
	suite.Contains(fileName, ".pdf")

	suite.mockReceiptRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateDocument_ClientInvoice() {
	ctx := context.Background()
	receipts := suite.sampleReceipts("")
	ids := []string{receipts[0].ReceiptID, receipts[1].ReceiptID}

	suite.mockReceiptRepo.On("FindReceiptsByIDs", ctx, ids, true).Return(receipts, nil).Once()
	suite.mockSettingsSvc.On("GetSettings", ctx).
		Return(&domain.Settings{BusinessName: "Acme Consulting"}, nil).Once()
	suite.mockSettingsSvc.On("AllocateInvoiceNumber", ctx).Return("INV-0001", nil).Once()

	data, fileName, err := suite.service.GenerateDocument(ctx, dto.GenerateInvoiceRequest{
		Type:       dto.InvoiceTypeClientInvoice,
		ReceiptIDs: ids,
		Config:     dto.InvoiceConfig{ClientName: "Globex Corp"},
	})

	suite.Require().NoError(err)
	suite.NotEmpty(data)
	suite.Equal("%PDF", string(data[:4]))
	suite.Equal("INV-0001.pdf", fileName)

	suite.mockSettingsSvc.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestGenerateDocument_NoReceipts() {
	ctx := context.Background()
	ids := []string{uuid.NewString()}

	suite.mockReceiptRepo.On("FindReceiptsByIDs", ctx, ids, true).
		Return([]domain.Receipt{}, nil).Once()

	data, fileName, err := suite.service.GenerateDocument(ctx, dto.GenerateInvoiceRequest{
		Type:       dto.InvoiceTypeExpenseReport,
		ReceiptIDs: ids,
	})

	suite.Require().Error(err)
	suite.Nil(data)
	suite.Empty(fileName)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestGenerateDocument_UnknownType() {
	ctx := context.Background()
	receipts := suite.sampleReceipts("")
	ids := []string{receipts[0].ReceiptID}

	suite.mockReceiptRepo.On("FindReceiptsByIDs", ctx, ids, true).Return(receipts, nil).Once()

	data, _, err := suite.service.GenerateDocument(ctx, dto.GenerateInvoiceRequest{
		Type:       "poster",
		ReceiptIDs: ids,
	})

	suite.Require().Error(err)
	suite.Nil(data)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
