package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

// ContentService covers the CMS-ish surfaces: banner content and categories.
type ContentService struct {
	contents   repositories.ContentRepository
	categories repositories.CategoryRepository
}

func NewContentService(contents repositories.ContentRepository, categories repositories.CategoryRepository) *ContentService {
	return &ContentService{contents: contents, categories: categories}
}

func (s *ContentService) CreateContent(ctx context.Context, req *dtos.ContentRequest) (*models.Content, error) {
	c := &models.Content{
		ID:          uuid.New(),
		Title:       req.Title,
		BannerImage: req.BannerImage,
		Description: req.Description,
		Phone:       req.Phone,
		Email:       req.Email,
	}
	if err := s.contents.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) GetContent(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	c, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: content %s", utils.ErrNotFound, id)
	}
	return c, nil
}

func (s *ContentService) ListContent(ctx context.Context) ([]*models.Content, error) {
	return s.contents.ListAll(ctx)
}

func (s *ContentService) UpdateContent(ctx context.Context, id uuid.UUID, req *dtos.ContentRequest) (*models.Content, error) {
	c, err := s.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Title = req.Title
	c.BannerImage = req.BannerImage
	c.Description = req.Description
	c.Phone = req.Phone
	c.Email = req.Email
	if err := s.contents.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) DeleteContent(ctx context.Context, id uuid.UUID) error {
	return s.contents.Delete(ctx, id)
}

func (s *ContentService) CreateCategory(ctx context.Context, req *dtos.CategoryRequest) (*models.Category, error) {
	c := &models.Category{
		ID:           uuid.New(),
		CategoryName: req.CategoryName,
		Labels:       req.Labels,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: category %s", utils.ErrNotFound, id)
	}
	return c, nil
}

func (s *ContentService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.categories.ListAll(ctx)
}

func (s *ContentService) UpdateCategory(ctx context.Context, id uuid.UUID, req *dtos.CategoryRequest) (*models.Category, error) {
	c, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.CategoryName = req.CategoryName
	c.Labels = req.Labels
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.categories.Delete(ctx, id)
}
