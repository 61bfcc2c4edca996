package service

import (
	"context"
	"strings"

	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/domain"
	"github.com/njprem/TravelerGuide_APP_BackEnd/internal/repository/ports"
)

// CategoryService seeds top-level categories. Categories are create-only.
type CategoryService struct {
	repo ports.DestinationsRepository
}

func NewCategoryService(repo ports.DestinationsRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CreateCategoryInput struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	category := domain.Category{
		Name:     strings.TrimSpace(input.Name),
		ImageURL: strings.TrimSpace(input.ImageURL),
	}
	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id
	return &category, nil
}
