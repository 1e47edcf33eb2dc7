package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// CategorySvcFacade defines the category business operations. ListCategories
// seeds the default categories into an empty database.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}
