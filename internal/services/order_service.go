package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"autocare/internal/models"
	"autocare/internal/money"
	"autocare/internal/repositories"

	"github.com/google/uuid"
)

const maxOrderNumberAttempts = 5

// CheckoutRequest carries the contact, delivery and payment fields of a checkout.
type CheckoutRequest struct {
	Name          string `json:"name" form:"name" validate:"required,max=200"`
	Phone         string `json:"phone" form:"phone" validate:"required,max=20"`
	Email         string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	HouseNumber   string `json:"house_number" form:"house_number" validate:"max=50"`
	RoadNumber    string `json:"road_number" form:"road_number" validate:"max=50"`
	BlockNumber   string `json:"block_number" form:"block_number" validate:"max=50"`
	Area          string `json:"area" form:"area" validate:"max=100"`
	BuildingName  string `json:"building_name" form:"building_name" validate:"max=200"`
	FlatNumber    string `json:"flat_number" form:"flat_number" validate:"max=50"`
	Notes         string `json:"notes" form:"notes"`
	PaymentMethod string `json:"payment_method" form:"payment_method" validate:"omitempty,oneof=cash card benefit"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo      repositories.OrderRepository
	cartRepo       repositories.CartRepository
	tx             repositories.Transactor
	publisher      EventPublisher
	newOrderNumber func() string
}

// NewOrderService creates a new OrderService. publisher may be nil.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, tx repositories.Transactor, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		cartRepo:       cartRepo,
		tx:             tx,
		publisher:      publisher,
		newOrderNumber: NewOrderNumber,
	}
}

// SetOrderNumberGenerator replaces the order number generator.
func (s *OrderService) SetOrderNumberGenerator(fn func() string) {
	s.newOrderNumber = fn
}

// NewOrderNumber returns "ORD-" followed by eight upper-case hex digits of a
// random UUID.
func NewOrderNumber() string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "ORD-" + strings.ToUpper(token[:8])
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.orderRepo.GetAll(ctx)
}

// GetOrderByNumber retrieves a single order by its order number.
func (s *OrderService) GetOrderByNumber(ctx context.Context, number string) (*models.Order, error) {
	return s.orderRepo.GetByNumber(ctx, number)
}

// Summary prices the session's cart for the checkout page.
func (s *OrderService) Summary(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	cart, err := s.cartRepo.GetWithItems(ctx, sessionID)
	if errors.Is(err, repositories.ErrNotFound) {
		return newCartView(&models.Cart{}), nil
	}
	if err != nil {
		return nil, err
	}
	return newCartView(cart), nil
}

// PlaceOrder turns the session's cart into an order. The order, its item
// snapshots and the emptying of the cart commit together or not at all. A
// colliding order number restarts the transaction with a fresh number.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, req CheckoutRequest) (*models.Order, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = models.DefaultPaymentMethod
	}
	if !hasChoice(models.PaymentMethods, req.PaymentMethod) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	for attempt := 1; attempt <= maxOrderNumberAttempts; attempt++ {
		number := s.newOrderNumber()
		order, err := s.placeOrder(ctx, sessionID, req, number)
		if errors.Is(err, repositories.ErrDuplicateKey) {
			log.Printf("Order number %s already in use (attempt %d/%d)", number, attempt, maxOrderNumberAttempts)
			continue
		}
		if err != nil {
			return nil, err
		}

		publishEvent(s.publisher, RoutingOrderPlaced, OrderPlacedEvent{
			OrderNumber:   order.OrderNumber,
			CustomerName:  order.CustomerName,
			CustomerPhone: order.CustomerPhone,
			PaymentMethod: order.PaymentMethod,
			Total:         money.Format(order.TotalAmount),
			Items:         len(order.Items),
		})
		return order, nil
	}
	return nil, ErrOrderNumberExhausted
}

func (s *OrderService) placeOrder(ctx context.Context, sessionID string, req CheckoutRequest, number string) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.cartRepo.GetWithItems(ctx, sessionID)
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		taken, err := s.orderRepo.NumberExists(ctx, number)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("order number %s: %w", number, repositories.ErrDuplicateKey)
		}

		order = newOrder(number, req, cart)
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		return s.cartRepo.ClearItems(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func newOrder(number string, req CheckoutRequest, cart *models.Cart) *models.Order {
	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		productID := item.ProductID
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   &productID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Price:       item.Product.Price,
		})
	}

	return &models.Order{
		OrderNumber:          number,
		CustomerName:         req.Name,
		CustomerPhone:        req.Phone,
		CustomerEmail:        req.Email,
		HouseNumber:          req.HouseNumber,
		RoadNumber:           req.RoadNumber,
		BlockNumber:          req.BlockNumber,
		Area:                 req.Area,
		BuildingName:         req.BuildingName,
		FlatNumber:           req.FlatNumber,
		AdditionalDirections: req.Notes,
		PaymentMethod:        req.PaymentMethod,
		Status:               models.OrderConfirmed,
		TotalAmount:          ComputeTotal(cart),
		Items:                orderItems,
	}
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, number string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	if err := s.orderRepo.UpdateStatus(ctx, number, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", number, err)
	}
	return nil
}
