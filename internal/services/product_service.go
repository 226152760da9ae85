package services

import (
	"context"
	"fmt"

	"autocare/internal/models"
	"autocare/internal/repositories"
)

// ProductService handles business logic related to shop products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// Choices lists the selectable categories and car makes of the shop.
type Choices struct {
	Categories []models.Choice `json:"categories"`
	CarMakes   []models.Choice `json:"car_makes"`
}

// ShopChoices returns the filter choices shown above the shop listing.
func (s *ProductService) ShopChoices() Choices {
	return Choices{Categories: models.ProductCategories, CarMakes: models.CarMakes}
}

// ListShopProducts returns available products, optionally narrowed to one
// category and one car make.
func (s *ProductService) ListShopProducts(ctx context.Context, category, carMake string) ([]models.Product, error) {
	return s.repo.List(ctx, repositories.ProductFilter{
		Category:      category,
		CarMake:       carMake,
		AvailableOnly: true,
	})
}

// GetAllProducts retrieves all products, including unavailable ones.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx, repositories.ProductFilter{})
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCategories returns the category metadata rows.
func (s *ProductService) ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	return s.repo.ListCategories(ctx)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.CarMake == "" {
		product.CarMake = models.DefaultCarMake
	}
	if err := checkProduct(product); err != nil {
		return err
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.CarMake == "" {
		product.CarMake = models.DefaultCarMake
	}
	if err := checkProduct(product); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// DeleteProduct deletes a product by its ID. Past orders keep their snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func checkProduct(product *models.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if product.StockQuantity < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	if !hasChoice(models.ProductCategories, product.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidProduct, product.Category)
	}
	if !hasChoice(models.CarMakes, product.CarMake) {
		return fmt.Errorf("%w: unknown car make %q", ErrInvalidProduct, product.CarMake)
	}
	return nil
}

func hasChoice(choices []models.Choice, value string) bool {
	for _, c := range choices {
		if c.Value == value {
			return true
		}
	}
	return false
}
