package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/middleware"
)

const defaultCategoryColor = "#a3a3a3"

// categoryService handles category business logic.
type categoryService struct {
	categoryRepo ports.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo ports.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// CreateCategory creates a new user-defined category.
func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now()
	color := req.Color
	if color == "" {
		color = defaultCategoryColor
	}

	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Color:      color,
		IsDefault:  false,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// GetCategoryByID retrieves a single category.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// ListCategories returns all categories, seeding the default ones into an
// empty database on first call.
func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	count, err := s.categoryRepo.CountCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if count == 0 {
		if err := s.seedDefaults(ctx); err != nil {
			return nil, err
		}
	}

	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) seedDefaults(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()
	for _, category := range domain.DefaultCategories {
		category.CategoryID = uuid.NewString()
		category.CreatedAt = now
		category.UpdatedAt = now
		if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
			logger.Error("Failed to seed default category", slog.String("name", category.Name), slog.String("error", err.Error()))
			return fmt.Errorf("failed to seed default categories: %w", err)
		}
	}
	logger.Info("Seeded default categories", slog.Int("count", len(domain.DefaultCategories)))
	return nil
}

// UpdateCategory updates a category's name and color.
func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category for update: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category. Receipts filed under it become
// uncategorized.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
