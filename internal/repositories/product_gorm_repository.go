package repositories

import (
	"context"
	"fmt"

	"autocare/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves the products matching filter, oldest first.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	q := conn(ctx, r.db).Model(&models.Product{})
	if filter.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.CarMake != "" {
		q = q.Where("car_make = ?", filter.CarMake)
	}

	products := []models.Product{}
	if err := q.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := conn(ctx, r.db).First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("product with ID %d: %w", id, translate(err))
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := conn(ctx, r.db).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := conn(ctx, r.db).Model(&models.Product{ID: product.ID}).
		Select("*").Omit("id", "created_at", "deleted_at").
		Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Updates reports no error for a missing row.
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a product. Cart lines holding it are removed and order
// lines keep their snapshot but lose the product reference.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to remove product %d from carts: %w", id, err)
		}
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach product %d from orders: %w", id, err)
		}
		return nil
	})
}

// ListCategories returns the category metadata rows.
func (r *GORMProductRepository) ListCategories(ctx context.Context) ([]models.ProductCategory, error) {
	categories := []models.ProductCategory{}
	if err := conn(ctx, r.db).Order("name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}
	return categories, nil
}
