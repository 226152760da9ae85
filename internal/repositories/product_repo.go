package repositories

import (
	"context"

	"autocare/internal/models"
)

// ProductFilter narrows a product listing. Empty fields match everything.
type ProductFilter struct {
	Category      string
	CarMake       string
	AvailableOnly bool
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	ListCategories(ctx context.Context) ([]models.ProductCategory, error)
}
