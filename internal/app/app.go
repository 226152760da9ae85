// Package app wires repositories, services and handlers into a Fiber app.
package app

import (
	"time"

	"autocare/internal/config"
	"autocare/internal/handlers"
	"autocare/internal/middleware"
	"autocare/internal/repositories"
	"autocare/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// New builds the HTTP application. publisher may be nil, in which case
// events are skipped.
func New(cfg config.Config, db *gorm.DB, publisher services.EventPublisher) *fiber.App {
	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	serviceRepo := repositories.NewGORMServiceRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)
	appointmentRepo := repositories.NewGORMAppointmentRepository(db)
	transactor := repositories.NewGORMTransactor(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	catalogService := services.NewCatalogService(serviceRepo)
	productService := services.NewProductService(productRepo)
	ratingService := services.NewRatingService(ratingRepo, serviceRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, transactor, publisher)
	appointmentService := services.NewAppointmentService(appointmentRepo, serviceRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, productService, ratingService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	shopHandler := handlers.NewShopHandler(cartService, orderService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	app := fiber.New(fiber.Config{AppName: "autocare"})
	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		status := "healthy"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
			"events": publisher != nil,
		})
	})

	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	catalogHandler.RegisterRoutes(apiV1)
	ratingHandler.RegisterRoutes(apiV1)

	// Staff routes
	admin := apiV1.Group("/admin", middleware.AuthRequired(authService), middleware.StaffRequired())
	catalogHandler.RegisterAdminRoutes(admin)
	shopHandler.RegisterAdminRoutes(admin)
	appointmentHandler.RegisterAdminRoutes(admin)

	// Routes for signed-in users
	appointmentHandler.RegisterRoutes(apiV1.Group("/appointments", middleware.AuthRequired(authService)))

	// Shopper routes keyed by the session cookie. Keep last: the session
	// middleware covers all of /api/v1.
	sessionStore := middleware.NewSessionStore(cfg.SessionExpiration)
	shopHandler.RegisterRoutes(apiV1.Group("", middleware.Session(sessionStore)))

	return app
}
