package services

import (
	"context"
	"fmt"

	"autocare/internal/models"
	"autocare/internal/repositories"
)

// CatalogService serves the workshop services offered for booking and rating.
type CatalogService struct {
	repo repositories.ServiceRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.ServiceRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListServices returns every service.
func (s *CatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.repo.GetAll(ctx)
}

// GetService returns one service.
func (s *CatalogService) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateService adds a service to the catalog.
func (s *CatalogService) CreateService(ctx context.Context, service *models.Service) error {
	if service.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidService)
	}
	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidService)
	}
	return s.repo.Create(ctx, service)
}
