package services

import (
	"context"
	"fmt"

	"autocare/internal/models"
	"autocare/internal/money"
	"autocare/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartAction is a quantity change requested on a cart line.
type CartAction string

const (
	ActionIncrease CartAction = "increase"
	ActionDecrease CartAction = "decrease"
	ActionRemove   CartAction = "remove"
)

// CartLine is one priced line of a cart view.
type CartLine struct {
	ProductID uint
	Name      string
	ImageURL  string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// CartView is a cart priced against the live catalog.
type CartView struct {
	Lines     []CartLine
	ItemCount int
	Total     decimal.Decimal
}

// CartService manages the per-session shopping cart.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// GetOrCreate returns the cart of the session, creating it on first use.
func (s *CartService) GetOrCreate(ctx context.Context, sessionID string) (*models.Cart, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	return s.carts.GetOrCreate(ctx, sessionID)
}

// AddItem adds quantity units of a product to the cart and returns the new
// unit count of the cart together with the product.
func (s *CartService) AddItem(ctx context.Context, cart *models.Cart, productID uint, quantity int) (int, *models.Product, error) {
	if quantity < 1 {
		return 0, nil, ErrInvalidQuantity
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return 0, nil, err
	}

	if err := s.carts.IncrementItem(ctx, cart.ID, product.ID, quantity); err != nil {
		return 0, nil, err
	}
	count, err := s.carts.ItemCount(ctx, cart.ID)
	if err != nil {
		return 0, nil, err
	}
	return count, product, nil
}

// UpdateItem applies action to the product's line. A decrease below one
// unit removes the line.
func (s *CartService) UpdateItem(ctx context.Context, cart *models.Cart, productID uint, action CartAction) (*models.Product, error) {
	switch action {
	case ActionIncrease, ActionDecrease, ActionRemove:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	item, err := s.carts.GetItem(ctx, cart.ID, productID)
	if err != nil {
		return nil, err
	}

	switch {
	case action == ActionIncrease:
		err = s.carts.UpdateItemQuantity(ctx, item.ID, item.Quantity+1)
	case action == ActionDecrease && item.Quantity > 1:
		err = s.carts.UpdateItemQuantity(ctx, item.ID, item.Quantity-1)
	default:
		err = s.carts.DeleteItem(ctx, item.ID)
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

// ComputeTotal sums price × quantity over the loaded items of cart, rounded
// once at the end. Cart views, the checkout summary and placed orders all
// take their total from here.
func ComputeTotal(cart *models.Cart) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range cart.Items {
		sum = sum.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return money.Round(sum)
}

// View loads the cart of the session with live prices.
func (s *CartService) View(ctx context.Context, sessionID string) (*CartView, error) {
	if _, err := s.GetOrCreate(ctx, sessionID); err != nil {
		return nil, err
	}
	cart, err := s.carts.GetWithItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newCartView(cart), nil
}

func newCartView(cart *models.Cart) *CartView {
	view := &CartView{Lines: make([]CartLine, 0, len(cart.Items)), Total: ComputeTotal(cart)}
	for _, item := range cart.Items {
		view.Lines = append(view.Lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			ImageURL:  item.Product.ImageURL,
			Quantity:  item.Quantity,
			UnitPrice: money.Round(item.Product.Price),
			Subtotal:  money.LineTotal(item.Product.Price, item.Quantity),
		})
		view.ItemCount += item.Quantity
	}
	return view
}
