package repositories

import (
	"context"

	"autocare/internal/models"
)

// CartRepository defines the interface for session cart data access.
type CartRepository interface {
	// GetOrCreate returns the cart of sessionID, creating an empty one if needed.
	GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error)
	// GetWithItems loads the cart of sessionID with its items and their products.
	GetWithItems(ctx context.Context, sessionID string) (*models.Cart, error)
	GetItem(ctx context.Context, cartID, productID uint) (*models.CartItem, error)
	// IncrementItem adds quantity to the (cart, product) line, creating it when absent.
	IncrementItem(ctx context.Context, cartID, productID uint, quantity int) error
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, itemID uint) error
	ClearItems(ctx context.Context, cartID uint) error
	ItemCount(ctx context.Context, cartID uint) (int, error)
}
