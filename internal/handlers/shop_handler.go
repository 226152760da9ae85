package handlers

import (
	"fmt"
	"log"
	"time"

	"autocare/internal/middleware"
	"autocare/internal/models"
	"autocare/internal/money"
	"autocare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ShopHandler handles the session cart, checkout and order confirmation.
type ShopHandler struct {
	carts    *services.CartService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(carts *services.CartService, orders *services.OrderService) *ShopHandler {
	return &ShopHandler{
		carts:    carts,
		orders:   orders,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the shopper routes. router must run the Session
// middleware.
func (h *ShopHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/cart", h.HandleViewCart)
	router.Post("/cart/add/:product_id", h.HandleAddToCart)
	router.Post("/cart/update/:product_id", h.HandleUpdateCart)
	router.Get("/checkout", h.HandleCheckoutSummary)
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/orders/:order_number", h.HandleOrderConfirmation)
}

// RegisterAdminRoutes registers the order maintenance routes.
func (h *ShopHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/orders", h.HandleListOrders)
	router.Patch("/orders/:order_number/status", h.HandleUpdateOrderStatus)
}

type cartLineResponse struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	Subtotal  string `json:"subtotal"`
}

type cartResponse struct {
	Items     []cartLineResponse `json:"cart_items"`
	Total     string             `json:"total"`
	CartCount int                `json:"cart_count"`
}

func newCartResponse(view *services.CartView) cartResponse {
	resp := cartResponse{
		Items:     make([]cartLineResponse, 0, len(view.Lines)),
		Total:     amount(view.Total),
		CartCount: view.ItemCount,
	}
	for _, line := range view.Lines {
		resp.Items = append(resp.Items, cartLineResponse{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			Price:     amount(line.UnitPrice),
			Subtotal:  amount(line.Subtotal),
		})
	}
	return resp
}

// HandleViewCart returns the session's cart priced against the catalog.
func (h *ShopHandler) HandleViewCart(c *fiber.Ctx) error {
	view, err := h.carts.View(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return fail(c, "Could not load cart", err)
	}
	return c.JSON(newCartResponse(view))
}

// AddToCartRequest is the optional body of the add-to-cart route.
type AddToCartRequest struct {
	Quantity *int `json:"quantity" form:"quantity"`
}

// HandleAddToCart adds a product to the session's cart.
func (h *ShopHandler) HandleAddToCart(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	var req AddToCartRequest
	if err := parseBody(c, &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request body",
		})
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx := c.UserContext()
	cart, err := h.carts.GetOrCreate(ctx, middleware.SessionID(c))
	if err != nil {
		return fail(c, "Could not load cart", err)
	}
	count, product, err := h.carts.AddItem(ctx, cart, productID, quantity)
	if err != nil {
		log.Printf("Error adding product %d to cart %d: %v", productID, cart.ID, err)
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"cart_count": count,
		"message":    fmt.Sprintf("%s added to cart!", product.Name),
	})
}

// UpdateCartRequest names the change to apply to a cart line.
type UpdateCartRequest struct {
	Action string `json:"action" form:"action" validate:"required,oneof=increase decrease remove"`
}

// HandleUpdateCart applies increase, decrease or remove to a cart line and
// returns the updated cart.
func (h *ShopHandler) HandleUpdateCart(c *fiber.Ctx) error {
	productID, err := paramID(c, "product_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	var req UpdateCartRequest
	if err := parseBody(c, &req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	ctx := c.UserContext()
	sessionID := middleware.SessionID(c)
	cart, err := h.carts.GetOrCreate(ctx, sessionID)
	if err != nil {
		return fail(c, "Could not load cart", err)
	}
	action := services.CartAction(req.Action)
	product, err := h.carts.UpdateItem(ctx, cart, productID, action)
	if err != nil {
		return fail(c, "Item not found", err)
	}

	view, err := h.carts.View(ctx, sessionID)
	if err != nil {
		return fail(c, "Could not load cart", err)
	}
	message := fmt.Sprintf("Updated %s quantity", product.Name)
	if action == services.ActionRemove || !containsProduct(view, productID) {
		message = fmt.Sprintf("Removed %s from cart", product.Name)
	}
	return c.JSON(fiber.Map{
		"message": message,
		"cart":    newCartResponse(view),
	})
}

func containsProduct(view *services.CartView, productID uint) bool {
	for _, line := range view.Lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}

// HandleCheckoutSummary returns the cart as shown on the checkout page.
func (h *ShopHandler) HandleCheckoutSummary(c *fiber.Ctx) error {
	view, err := h.orders.Summary(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return fail(c, "Could not load checkout", err)
	}
	return c.JSON(fiber.Map{
		"cart":            newCartResponse(view),
		"payment_methods": models.PaymentMethods,
	})
}

// HandleCheckout places an order from the session's cart.
func (h *ShopHandler) HandleCheckout(c *fiber.Ctx) error {
	var req services.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.orders.PlaceOrder(c.UserContext(), middleware.SessionID(c), req)
	if err != nil {
		return fail(c, "Could not place order", err)
	}

	c.Location("/api/v1/orders/" + order.OrderNumber)
	return c.Status(fiber.StatusCreated).JSON(newOrderResponse(order))
}

type orderItemResponse struct {
	ProductID   *uint  `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

type orderResponse struct {
	OrderNumber          string              `json:"order_number"`
	Status               models.OrderStatus  `json:"status"`
	CustomerName         string              `json:"customer_name"`
	CustomerPhone        string              `json:"customer_phone"`
	CustomerEmail        string              `json:"customer_email"`
	FullAddress          string              `json:"full_address"`
	AdditionalDirections string              `json:"additional_directions"`
	PaymentMethod        string              `json:"payment_method"`
	Items                []orderItemResponse `json:"order_items"`
	TotalAmount          string              `json:"total_amount"`
	CreatedAt            string              `json:"created_at"`
}

func newOrderResponse(order *models.Order) orderResponse {
	resp := orderResponse{
		OrderNumber:          order.OrderNumber,
		Status:               order.Status,
		CustomerName:         order.CustomerName,
		CustomerPhone:        order.CustomerPhone,
		CustomerEmail:        order.CustomerEmail,
		FullAddress:          order.FullAddress(),
		AdditionalDirections: order.AdditionalDirections,
		PaymentMethod:        order.PaymentMethod,
		Items:                make([]orderItemResponse, 0, len(order.Items)),
		TotalAmount:          amount(order.TotalAmount),
		CreatedAt:            order.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       amount(item.Price),
			Subtotal:    amount(money.LineTotal(item.Price, item.Quantity)),
		})
	}
	return resp
}

// HandleOrderConfirmation shows a placed order by its number.
func (h *ShopHandler) HandleOrderConfirmation(c *fiber.Ctx) error {
	order, err := h.orders.GetOrderByNumber(c.UserContext(), c.Params("order_number"))
	if err != nil {
		return fail(c, "Order not found", err)
	}
	return c.JSON(newOrderResponse(order))
}

// HandleListOrders lists every order, newest first.
func (h *ShopHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, err := h.orders.GetAllOrders(c.UserContext())
	if err != nil {
		return fail(c, "Could not retrieve orders", err)
	}
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i]))
	}
	return c.JSON(out)
}

// HandleUpdateOrderStatus changes the delivery status of an order.
func (h *ShopHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	number := c.Params("order_number")
	var updateData struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return validationFailed(c, err)
	}
	if err := h.validate.Struct(updateData); err != nil {
		return validationFailed(c, err)
	}

	if err := h.orders.UpdateOrderStatus(c.UserContext(), number, models.OrderStatus(updateData.Status)); err != nil {
		return fail(c, "Order update failed", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", number, updateData.Status),
	})
}
