package repositories

import (
	"context"
	"fmt"

	"autocare/internal/models"

	"gorm.io/gorm"
)

// GORMAppointmentRepository is a GORM implementation of AppointmentRepository.
type GORMAppointmentRepository struct {
	db *gorm.DB
}

// NewGORMAppointmentRepository creates a new instance of GORMAppointmentRepository.
func NewGORMAppointmentRepository(db *gorm.DB) *GORMAppointmentRepository {
	return &GORMAppointmentRepository{db: db}
}

// Create stores a new appointment.
func (r *GORMAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := conn(ctx, r.db).Omit("Service").Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", translate(err))
	}
	return nil
}

// ListByUser returns the user's appointments ordered by date and time, descending.
func (r *GORMAppointmentRepository) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := conn(ctx, r.db).Preload("Service").
		Where("user_id = ?", userID).
		Order("appointment_date DESC, appointment_time DESC, id DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments of user %s: %w", userID, err)
	}
	return appointments, nil
}

// UpdateStatus sets the status of an appointment.
func (r *GORMAppointmentRepository) UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) error {
	res := conn(ctx, r.db).Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("appointment %d: %w", id, ErrNotFound)
	}
	return nil
}
