package repositories

import (
	"context"
	"fmt"

	"autocare/internal/models"

	"gorm.io/gorm"
)

// GORMServiceRepository is a GORM implementation of ServiceRepository.
type GORMServiceRepository struct {
	db *gorm.DB
}

// NewGORMServiceRepository creates a new instance of GORMServiceRepository.
func NewGORMServiceRepository(db *gorm.DB) *GORMServiceRepository {
	return &GORMServiceRepository{db: db}
}

// GetAll retrieves all services from the database.
func (r *GORMServiceRepository) GetAll(ctx context.Context) ([]models.Service, error) {
	services := []models.Service{}
	if err := conn(ctx, r.db).Order("id").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to get all services: %w", err)
	}
	return services, nil
}

// GetByID retrieves a single service by its ID from the database.
func (r *GORMServiceRepository) GetByID(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := conn(ctx, r.db).First(&service, id).Error; err != nil {
		return nil, fmt.Errorf("service with ID %d: %w", id, translate(err))
	}
	return &service, nil
}

// Create creates a new service in the database.
func (r *GORMServiceRepository) Create(ctx context.Context, service *models.Service) error {
	if err := conn(ctx, r.db).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", translate(err))
	}
	return nil
}
