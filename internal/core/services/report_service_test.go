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
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/core/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// --- Mock ReportRepository ---
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SaveReport(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) UpdateReport(ctx context.Context, report domain.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) FindReportByID(ctx context.Context, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

func (m *MockReportRepository) ListReports(ctx context.Context) ([]domain.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

func (m *MockReportRepository) DeleteReport(ctx context.Context, reportID string) error {
	args := m.Called(ctx, reportID)
	return args.Error(0)
}

// --- Test Suite ---
type ReportServiceTestSuite struct {
	suite.Suite
	mockReportRepo  *MockReportRepository
	mockReceiptRepo *MockReceiptRepository
	service         portssvc.ReportSvcFacade
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.mockReportRepo = new(MockReportRepository)
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.service = services.NewReportService(suite.mockReportRepo, suite.mockReceiptRepo)
}

// --- Test Cases ---

func (suite *ReportServiceTestSuite) TestCreateReport_StartsAsDraft() {
	ctx := context.Background()
	req := dto.CreateReportRequest{Name: "March Client Trip", DateFrom: "2024-03-01", DateTo: "2024-03-31"}

	suite.mockReportRepo.On("SaveReport", ctx, mock.MatchedBy(func(r domain.Report) bool {
		return r.Status == domain.ReportStatusDraft && r.Name == req.Name &&
			r.DateFrom != nil && r.DateFrom.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			r.DateTo != nil && r.DateTo.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()

	report, err := suite.service.CreateReport(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.ReportStatusDraft, report.Status)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestCreateReport_InvalidDate() {
	ctx := context.Background()
	req := dto.CreateReportRequest{Name: "Bad Dates", DateFrom: "03/01/2024"}

	report, err := suite.service.CreateReport(ctx, req)

	suite.Require().Error(err)
	suite.Nil(report)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "SaveReport", mock.Anything, mock.Anything)
}

func (suite *ReportServiceTestSuite) TestListReports_TotalsUseDisplayAmounts() {
	ctx := context.Background()
	reportID := uuid.NewString()
	reports := []domain.Report{{ReportID: reportID, Name: "March Client Trip"}}

	usd := "USD"
	converted := decimal.RequireFromString("108.54")
	rate := decimal.RequireFromString("1.0854")
	receipts := []domain.Receipt{
		{
			Total:             decimal.RequireFromString("100.00"),
			OriginalCurrency:  "EUR",
			ConvertedCurrency: &usd,
			ConvertedTotal:    &converted,
			ExchangeRate:      &rate,
		},
		{
			Total:            decimal.RequireFromString("42.10"),
			OriginalCurrency: "USD",
		},
	}

	suite.mockReportRepo.On("ListReports", ctx).Return(reports, nil).Once()
	suite.mockReceiptRepo.On("ListReceipts", ctx, ports.ReceiptFilter{ReportID: reportID}).
		Return(receipts, 2, nil).Once()

	summaries, err := suite.service.ListReports(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal(2, summaries[0].ReceiptCount)
	suite.True(summaries[0].TotalAmount.Equal(decimal.RequireFromString("150.64")))

	suite.mockReportRepo.AssertExpectations(suite.T())
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestGetReportWithReceipts() {
	ctx := context.Background()
	reportID := uuid.NewString()
	report := &domain.Report{ReportID: reportID, Name: "March Client Trip"}
	receipts := []domain.Receipt{{ReceiptID: uuid.NewString(), VendorName: "Hotel Berlin"}}

	suite.mockReportRepo.On("FindReportByID", ctx, reportID).Return(report, nil).Once()
	suite.mockReceiptRepo.On("ListReceipts", ctx, ports.ReceiptFilter{ReportID: reportID}).
		Return(receipts, 1, nil).Once()

	gotReport, gotReceipts, err := suite.service.GetReportWithReceipts(ctx, reportID)

	suite.Require().NoError(err)
	suite.Equal(report, gotReport)
	suite.Equal(receipts, gotReceipts)
}

func (suite *ReportServiceTestSuite) TestUpdateReport_Finalize() {
	ctx := context.Background()
	reportID := uuid.NewString()
	existing := &domain.Report{ReportID: reportID, Name: "March Client Trip", Status: domain.ReportStatusDraft}
	finalized := "finalized"

	suite.mockReportRepo.On("FindReportByID", ctx, reportID).Return(existing, nil).Once()
	suite.mockReportRepo.On("UpdateReport", ctx, mock.MatchedBy(func(r domain.Report) bool {
		return r.Status == domain.ReportStatusFinalized
	})).Return(nil).Once()

	report, err := suite.service.UpdateReport(ctx, reportID, dto.UpdateReportRequest{Status: &finalized})

	suite.Require().NoError(err)
	suite.Equal(domain.ReportStatusFinalized, report.Status)
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestDeleteReport_UnassignsReceiptsFirst() {
	ctx := context.Background()
	reportID := uuid.NewString()

	suite.mockReceiptRepo.On("UnassignReceiptsFromReport", ctx, reportID).Return(nil).Once()
	suite.mockReportRepo.On("DeleteReport", ctx, reportID).Return(nil).Once()

	err := suite.service.DeleteReport(ctx, reportID)

	suite.Require().NoError(err)
	suite.mockReceiptRepo.AssertExpectations(suite.T())
	suite.mockReportRepo.AssertExpectations(suite.T())
}

func (suite *ReportServiceTestSuite) TestDeleteReport_UnassignFailureAborts() {
	ctx := context.Background()
	reportID := uuid.NewString()

	suite.mockReceiptRepo.On("UnassignReceiptsFromReport", ctx, reportID).
		Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteReport(ctx, reportID)

	suite.Require().Error(err)
	suite.mockReportRepo.AssertNotCalled(suite.T(), "DeleteReport", mock.Anything, mock.Anything)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
