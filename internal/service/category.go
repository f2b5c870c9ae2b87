package service

import (
	"context"
	"fmt"

	"github.com/shopnest/marketplace/internal/domain"
	"github.com/shopnest/marketplace/internal/repository"
)

// CategoryService exposes read operations over product categories.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates a new category service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// ListCategories returns all categories.
func (s *CategoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
