package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/core/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// --- Test Suite ---
type CategoryServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCategoryRepository
	service  portssvc.CategorySvcFacade
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCategoryRepository)
	suite.service = services.NewCategoryService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Client Gifts", Color: "#ff0000"}

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == req.Name && c.Color == req.Color && !c.IsDefault && c.CategoryID != ""
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(category)
	suite.Equal(req.Name, category.Name)
	suite.Equal(req.Color, category.Color)
	suite.False(category.IsDefault)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DefaultColor() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Client Gifts"}

	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Color == "#a3a3a3"
	})).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("#a3a3a3", category.Color)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{Name: "Travel"}

	suite.mockRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).
		Return(apperrors.ErrDuplicate).Once()

	category, err := suite.service.CreateCategory(ctx, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestListCategories_SeedsDefaultsWhenEmpty() {
	ctx := context.Background()

	suite.mockRepo.On("CountCategories", ctx).Return(0, nil).Once()
	suite.mockRepo.On("SaveCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.IsDefault && c.CategoryID != ""
	})).Return(nil).Times(len(domain.DefaultCategories))
	suite.mockRepo.On("ListCategories", ctx).Return(domain.DefaultCategories, nil).Once()

	categories, err := suite.service.ListCategories(ctx)

	suite.Require().NoError(err)
	suite.Len(categories, len(domain.DefaultCategories))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestListCategories_NoSeedingWhenPopulated() {
	ctx := context.Background()
	existing := []domain.Category{{CategoryID: uuid.NewString(), Name: "Travel"}}

	suite.mockRepo.On("CountCategories", ctx).Return(1, nil).Once()
	suite.mockRepo.On("ListCategories", ctx).Return(existing, nil).Once()

	categories, err := suite.service.ListCategories(ctx)

	suite.Require().NoError(err)
	suite.Equal(existing, categories)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_Success() {
	ctx := context.Background()
	categoryID := uuid.NewString()
	existing := &domain.Category{CategoryID: categoryID, Name: "Travel", Color: "#6366f1"}
	newName := "Business Travel"

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(c domain.Category) bool {
		return c.Name == newName && c.Color == "#6366f1"
	})).Return(nil).Once()

	category, err := suite.service.UpdateCategory(ctx, categoryID, dto.UpdateCategoryRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, category.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_NotFound() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("FindCategoryByID", ctx, categoryID).
		Return(nil, apperrors.ErrNotFound).Once()

	category, err := suite.service.UpdateCategory(ctx, categoryID, dto.UpdateCategoryRequest{})

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_RepoError() {
	ctx := context.Background()
	categoryID := uuid.NewString()

	suite.mockRepo.On("DeleteCategory", ctx, categoryID).Return(assert.AnError).Once()

	err := suite.service.DeleteCategory(ctx, categoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
