package repositories

import (
	"context"
	"errors"
	"fmt"

	"autocare/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// GetOrCreate returns the cart of sessionID, creating it on first use.
func (r *GORMCartRepository) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := conn(ctx, r.db).Where(models.Cart{SessionID: sessionID}).FirstOrCreate(&cart).Error
	if errors.Is(translate(err), ErrDuplicateKey) {
		// another request created it first
		err = conn(ctx, r.db).Where("session_id = ?", sessionID).First(&cart).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart for session %s: %w", sessionID, translate(err))
	}
	return &cart, nil
}

// GetWithItems loads the cart with items ordered by insertion. Inside a
// transaction the cart row is locked for update.
func (r *GORMCartRepository) GetWithItems(ctx context.Context, sessionID string) (*models.Cart, error) {
	q := conn(ctx, r.db)
	if inTx(ctx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var cart models.Cart
	err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.id")
	}).Preload("Items.Product").
		Where("session_id = ?", sessionID).
		First(&cart).Error
	if err != nil {
		return nil, fmt.Errorf("cart for session %s: %w", sessionID, translate(err))
	}
	return &cart, nil
}

// GetItem returns the line of productID in cartID.
func (r *GORMCartRepository) GetItem(ctx context.Context, cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := conn(ctx, r.db).Where("cart_id = ? AND product_id = ?", cartID, productID).
		Order("id").First(&item).Error
	if err != nil {
		return nil, fmt.Errorf("cart item for product %d: %w", productID, translate(err))
	}
	return &item, nil
}

// IncrementItem adds quantity to the line of productID, creating the line if
// the cart has none. The upsert runs in one statement so concurrent adds are
// neither lost nor split into duplicate lines.
func (r *GORMCartRepository) IncrementItem(ctx context.Context, cartID, productID uint, quantity int) error {
	item := models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	err := conn(ctx, r.db).Omit("Product").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", translate(err))
	}
	return nil
}

// UpdateItemQuantity sets the quantity of a cart line.
func (r *GORMCartRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	res := conn(ctx, r.db).Model(&models.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("failed to update cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	return nil
}

// DeleteItem removes a cart line.
func (r *GORMCartRepository) DeleteItem(ctx context.Context, itemID uint) error {
	res := conn(ctx, r.db).Delete(&models.CartItem{}, itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
	}
	return nil
}

// ClearItems removes every line of the cart, leaving the cart itself.
func (r *GORMCartRepository) ClearItems(ctx context.Context, cartID uint) error {
	if err := conn(ctx, r.db).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart %d: %w", cartID, err)
	}
	return nil
}

// ItemCount sums the quantities of the cart's lines.
func (r *GORMCartRepository) ItemCount(ctx context.Context, cartID uint) (int, error) {
	var total int64
	err := conn(ctx, r.db).Model(&models.CartItem{}).
		Where("cart_id = ?", cartID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count cart %d: %w", cartID, err)
	}
	return int(total), nil
}
