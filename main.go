package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"autocare/internal/app"
	"autocare/internal/config"
	"autocare/internal/database"
	"autocare/internal/models"
	"autocare/internal/notifications"
	"autocare/internal/repositories"
	"autocare/internal/services"
	"autocare/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if cfg.SeedCatalog {
		if err := seedCatalog(context.Background(), db); err != nil {
			log.Printf("Error seeding catalog: %v", err)
		}
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{
			URL:      cfg.RabbitMQURL,
			Exchange: services.EventsExchange,
			Queue:    "notifications",
		})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		if err := mqClient.Consume(notifications.Handle); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
		publisher = mqClient
	} else {
		log.Println("RABBITMQ_URL not set; order and appointment events are disabled")
	}

	server := app.New(cfg, db, publisher)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := server.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("Server gracefully stopped")
}

// seedCatalog fills an empty database with the workshop's starter services,
// categories and products. A database that already has services is left alone.
func seedCatalog(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	serviceRepo := repositories.NewGORMServiceRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	catalog := []models.Service{
		{Name: "Exterior Wash", Description: "Hand wash, wheel clean and dry", DurationMinutes: 30, Price: decimal.RequireFromString("5.00")},
		{Name: "Full Detail", Description: "Interior and exterior deep clean", DurationMinutes: 180, Price: decimal.RequireFromString("35.00")},
		{Name: "Oil Change", Description: "Engine oil and filter replacement", DurationMinutes: 45, Price: decimal.RequireFromString("15.00")},
		{Name: "Ceramic Coating", Description: "Paint correction and ceramic protection", DurationMinutes: 480, Price: decimal.RequireFromString("120.00")},
	}
	for i := range catalog {
		if err := serviceRepo.Create(ctx, &catalog[i]); err != nil {
			return err
		}
		log.Printf("Seeded service: %s (ID: %d)", catalog[i].Name, catalog[i].ID)
	}

	categories := []models.ProductCategory{
		{Name: "Engine Oil", Description: "Mineral, semi and fully synthetic oils"},
		{Name: "Car Polish", Description: "Polishes, waxes and sealants"},
		{Name: "Cleaning Supplies", Description: "Shampoos, cloths and brushes"},
	}
	if err := db.WithContext(ctx).Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{Name: "Synthetic Oil 5W-30 4L", Category: "engine_oil", CarMake: models.DefaultCarMake, Price: decimal.RequireFromString("12.500"), StockQuantity: 40, IsAvailable: true},
		{Name: "Coolant Concentrate 1L", Category: "coolant", CarMake: models.DefaultCarMake, Price: decimal.RequireFromString("3.250"), StockQuantity: 25, IsAvailable: true},
		{Name: "Carnauba Wax", Category: "polish", CarMake: models.DefaultCarMake, Price: decimal.RequireFromString("6.750"), StockQuantity: 15, IsAvailable: true},
		{Name: "Microfiber Cloth Pack", Category: "cleaning", CarMake: models.DefaultCarMake, Price: decimal.RequireFromString("1.250"), StockQuantity: 100, IsAvailable: true},
	}
	for i := range products {
		if err := productRepo.Create(ctx, &products[i]); err != nil {
			return err
		}
		log.Printf("Seeded product: %s (ID: %d)", products[i].Name, products[i].ID)
	}
	return nil
}
