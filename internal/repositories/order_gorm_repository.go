package repositories

import (
	"context"
	"fmt"

	"autocare/internal/models"

	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.id")
}

// GetAll returns all orders, newest first.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := conn(ctx, r.db).Preload("Items", preloadItems).Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByNumber returns an order and its items by order number.
func (r *GORMOrderRepository) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := conn(ctx, r.db).Preload("Items", preloadItems).Where("order_number = ?", number).First(&order).Error
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", number, translate(err))
	}
	return &order, nil
}

// NumberExists reports whether an order already uses number.
func (r *GORMOrderRepository) NumberExists(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check order number %s: %w", number, err)
	}
	return count > 0, nil
}

// Create inserts the order and its items in one statement batch.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := conn(ctx, r.db).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order %s: %w", order.OrderNumber, translate(err))
	}
	return nil
}

// UpdateStatus changes the status of an order.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, number string, status models.OrderStatus) error {
	res := conn(ctx, r.db).Model(&models.Order{}).Where("order_number = ?", number).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update status of order %s: %w", number, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order %s: %w", number, ErrNotFound)
	}
	return nil
}
