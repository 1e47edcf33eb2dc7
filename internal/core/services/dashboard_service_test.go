package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/core/services"
)

// --- Mock DashboardRepository ---
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) CountReceipts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountReportsByStatus(ctx context.Context, status domain.ReportStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) GetCategoryBreakdown(ctx context.Context) ([]domain.CategoryBreakdownRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryBreakdownRow), args.Error(1)
}

// --- Test Suite ---
type DashboardServiceTestSuite struct {
	suite.Suite
	mockDashboardRepo *MockDashboardRepository
	mockReceiptRepo   *MockReceiptRepository
	service           portssvc.DashboardSvcFacade
}

func (suite *DashboardServiceTestSuite) SetupTest() {
	suite.mockDashboardRepo = new(MockDashboardRepository)
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.service = services.NewDashboardService(suite.mockDashboardRepo, suite.mockReceiptRepo)
}

// --- Test Cases ---

func (suite *DashboardServiceTestSuite) TestGetSummary_Success() {
	ctx := context.Background()
	recent := []domain.Receipt{{VendorName: "Hotel Berlin"}}
	breakdown := []domain.CategoryBreakdownRow{
		{CategoryName: "Accommodation", Color: "#8b5cf6", Total: decimal.RequireFromString("300.00"), Count: 3},
	}

	suite.mockDashboardRepo.On("CountReceipts", ctx).Return(12, nil).Once()
	suite.mockDashboardRepo.On("CountReportsByStatus", ctx, domain.ReportStatusDraft).Return(2, nil).Once()
	suite.mockReceiptRepo.On("ListReceipts", ctx, ports.ReceiptFilter{Limit: 5}).
		Return(recent, 12, nil).Once()
	suite.mockDashboardRepo.On("GetCategoryBreakdown", ctx).Return(breakdown, nil).Once()

	summary, err := suite.service.GetSummary(ctx)

	suite.Require().NoError(err)
	suite.Equal(12, summary.TotalReceipts)
	suite.Equal(2, summary.DraftReports)
	suite.Equal(recent, summary.RecentReceipts)
	suite.Equal(breakdown, summary.CategoryBreakdown)

	suite.mockDashboardRepo.AssertExpectations(suite.T())
	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *DashboardServiceTestSuite) TestGetSummary_CountError() {
	ctx := context.Background()

	suite.mockDashboardRepo.On("CountReceipts", ctx).Return(0, assert.AnError).Once()

	summary, err := suite.service.GetSummary(ctx)

	suite.Require().Error(err)
	suite.Nil(summary)
	suite.ErrorIs(err, assert.AnError)
}

func TestDashboardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardServiceTestSuite))
}
