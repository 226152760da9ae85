package handlers

import (
	"autocare/internal/models"
	"autocare/internal/money"
	"autocare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CatalogHandler serves workshop services and shop products.
type CatalogHandler struct {
	catalog  *services.CatalogService
	products *services.ProductService
	ratings  *services.RatingService
	validate *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService, products *services.ProductService, ratings *services.RatingService) *CatalogHandler {
	return &CatalogHandler{
		catalog:  catalog,
		products: products,
		ratings:  ratings,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/services", h.HandleListServices)
	router.Get("/services/:id", h.HandleGetService)
	router.Get("/services/:id/ratings", h.HandleServiceRatings)

	shop := router.Group("/shop")
	shop.Get("/products", h.HandleShop)
	shop.Get("/products/:id", h.HandleGetProduct)
	shop.Get("/choices", h.HandleChoices)
	shop.Get("/categories", h.HandleCategories)
}

// RegisterAdminRoutes registers the catalog maintenance routes.
func (h *CatalogHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/products", h.HandleAdminListProducts)
	router.Post("/products", h.HandleCreateProduct)
	router.Put("/products/:id", h.HandleUpdateProduct)
	router.Delete("/products/:id", h.HandleDeleteProduct)
	router.Post("/services", h.HandleCreateService)
}

type serviceResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Price           string `json:"price"`
}

func newServiceResponse(s models.Service) serviceResponse {
	return serviceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           amount(s.Price),
	}
}

type productResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	CarMake       string `json:"car_make"`
	Description   string `json:"description"`
	Price         string `json:"price"`
	ImageURL      string `json:"image_url"`
	StockQuantity int    `json:"stock_quantity"`
	IsAvailable   bool   `json:"is_available"`
}

func newProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Category:      p.Category,
		CarMake:       p.CarMake,
		Description:   p.Description,
		Price:         amount(p.Price),
		ImageURL:      p.ImageURL,
		StockQuantity: p.StockQuantity,
		IsAvailable:   p.IsAvailable,
	}
}

func newProductResponses(products []models.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	return out
}

// HandleListServices lists every bookable service.
func (h *CatalogHandler) HandleListServices(c *fiber.Ctx) error {
	list, err := h.catalog.ListServices(c.UserContext())
	if err != nil {
		return fail(c, "Could not retrieve services", err)
	}
	out := make([]serviceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, newServiceResponse(s))
	}
	return c.JSON(out)
}

// HandleGetService returns one service.
func (h *CatalogHandler) HandleGetService(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	service, err := h.catalog.GetService(c.UserContext(), id)
	if err != nil {
		return fail(c, "Could not retrieve service", err)
	}
	return c.JSON(newServiceResponse(*service))
}

// HandleServiceRatings returns the rating summary of one service.
func (h *CatalogHandler) HandleServiceRatings(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	summary, err := h.ratings.ServiceSummary(c.UserContext(), id)
	if err != nil {
		return fail(c, "Could not retrieve service ratings", err)
	}
	return c.JSON(summary)
}

// HandleShop lists available products, filtered by ?category= and ?car_make=.
func (h *CatalogHandler) HandleShop(c *fiber.Ctx) error {
	category := c.Query("category")
	carMake := c.Query("car_make")
	products, err := h.products.ListShopProducts(c.UserContext(), category, carMake)
	if err != nil {
		return fail(c, "Could not retrieve products", err)
	}
	choices := h.products.ShopChoices()
	return c.JSON(fiber.Map{
		"products":          newProductResponses(products),
		"categories":        choices.Categories,
		"car_makes":         choices.CarMakes,
		"selected_category": category,
		"selected_car_make": carMake,
	})
}

// HandleGetProduct returns one product.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	product, err := h.products.GetProductByID(c.UserContext(), id)
	if err != nil {
		return fail(c, "Could not retrieve product", err)
	}
	return c.JSON(newProductResponse(*product))
}

// HandleChoices returns the category and car make choices.
func (h *CatalogHandler) HandleChoices(c *fiber.Ctx) error {
	return c.JSON(h.products.ShopChoices())
}

// HandleCategories returns the category metadata rows.
func (h *CatalogHandler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.products.ListCategories(c.UserContext())
	if err != nil {
		return fail(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// ProductRequest is the body of the product create and update routes.
type ProductRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	Category      string          `json:"category" validate:"required,oneof=engine_oil coolant polish cleaning accessories other"`
	CarMake       string          `json:"car_make" validate:"omitempty,oneof=universal toyota lexus nissan hyundai ford gmc bmw mercedes audi volkswagen porsche"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
	ImageURL      string          `json:"image_url" validate:"max=500"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	IsAvailable   *bool           `json:"is_available"`
}

func (r ProductRequest) toModel(id uint) *models.Product {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	return &models.Product{
		ID:            id,
		Name:          r.Name,
		Category:      r.Category,
		CarMake:       r.CarMake,
		Description:   r.Description,
		Price:         money.Round(r.Price),
		ImageURL:      r.ImageURL,
		StockQuantity: r.StockQuantity,
		IsAvailable:   available,
	}
}

func (h *CatalogHandler) parseProduct(c *fiber.Ctx) (*ProductRequest, error) {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, err
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, err
	}
	return &req, nil
}

// HandleAdminListProducts lists every product, available or not.
func (h *CatalogHandler) HandleAdminListProducts(c *fiber.Ctx) error {
	products, err := h.products.GetAllProducts(c.UserContext())
	if err != nil {
		return fail(c, "Could not retrieve products", err)
	}
	return c.JSON(newProductResponses(products))
}

// HandleCreateProduct adds a product to the shop.
func (h *CatalogHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, err := h.parseProduct(c)
	if err != nil {
		return validationFailed(c, err)
	}
	product := req.toModel(0)
	if err := h.products.CreateProduct(c.UserContext(), product); err != nil {
		return fail(c, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newProductResponse(*product))
}

// HandleUpdateProduct replaces the fields of a product.
func (h *CatalogHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	req, err := h.parseProduct(c)
	if err != nil {
		return validationFailed(c, err)
	}
	product := req.toModel(id)
	if err := h.products.UpdateProduct(c.UserContext(), product); err != nil {
		return fail(c, "Could not update product", err)
	}
	return c.JSON(newProductResponse(*product))
}

// HandleDeleteProduct removes a product from the shop.
func (h *CatalogHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.products.DeleteProduct(c.UserContext(), id); err != nil {
		return fail(c, "Could not delete product", err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// ServiceRequest is the body of the service create route.
type ServiceRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gt=0"`
	Price           decimal.Decimal `json:"price" validate:"gte=0"`
}

// HandleCreateService adds a bookable service.
func (h *CatalogHandler) HandleCreateService(c *fiber.Ctx) error {
	var req ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return validationFailed(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	service := &models.Service{
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           money.Round(req.Price),
	}
	if err := h.catalog.CreateService(c.UserContext(), service); err != nil {
		return fail(c, "Could not create service", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newServiceResponse(*service))
}
