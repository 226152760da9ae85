package repositories

import (
	"context"

	"autocare/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByNumber(ctx context.Context, number string) (*models.Order, error)
	NumberExists(ctx context.Context, number string) (bool, error)
	// Create inserts the order together with its items.
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, number string, status models.OrderStatus) error
}
