package repositories

import (
	"context"

	"autocare/internal/models"
)

// AppointmentRepository defines the interface for appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	// ListByUser returns the user's appointments, latest slot first.
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) error
}
