package models

import "time"

// Cart is the basket of one browser session. It outlives checkout; only its
// items are removed.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	SessionID string     `json:"session_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	Items     []CartItem `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ItemCount is the total number of units in the cart.
func (c *Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// CartItem is one product line in a cart. A cart holds at most one line per
// product.
type CartItem struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CartID    uint      `json:"cart_id" gorm:"uniqueIndex:idx_cart_items_cart_product;not null"`
	ProductID uint      `json:"product_id" gorm:"uniqueIndex:idx_cart_items_cart_product;index;not null"`
	Product   Product   `json:"product" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	AddedAt   time.Time `json:"added_at" gorm:"autoCreateTime"`
}
