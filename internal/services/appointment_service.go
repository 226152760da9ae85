package services

import (
	"context"
	"fmt"
	"time"

	"autocare/internal/models"
	"autocare/internal/repositories"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BookingRequest is the slot a user asks for.
type BookingRequest struct {
	Date  string `json:"appointment_date" form:"appointment_date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"appointment_time" form:"appointment_time" validate:"required,datetime=15:04"`
	Notes string `json:"customer_notes" form:"customer_notes"`
}

// AppointmentService records appointment requests. It does not check for
// overlapping bookings, capacity or opening hours.
type AppointmentService struct {
	appointments repositories.AppointmentRepository
	services     repositories.ServiceRepository
	publisher    EventPublisher
}

// NewAppointmentService creates a new AppointmentService. publisher may be nil.
func NewAppointmentService(appointments repositories.AppointmentRepository, services repositories.ServiceRepository, publisher EventPublisher) *AppointmentService {
	return &AppointmentService{appointments: appointments, services: services, publisher: publisher}
}

// Book creates a pending appointment for userID.
func (s *AppointmentService) Book(ctx context.Context, userID string, serviceID uint, req BookingRequest) (*models.Appointment, error) {
	if userID == "" {
		return nil, ErrInvalidToken
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, fmt.Errorf("%w: date %q", ErrInvalidSlot, req.Date)
	}
	if _, err := time.Parse(timeLayout, req.Time); err != nil {
		return nil, fmt.Errorf("%w: time %q", ErrInvalidSlot, req.Time)
	}

	service, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:        userID,
		ServiceID:     service.ID,
		Date:          req.Date,
		Time:          req.Time,
		Status:        models.AppointmentPending,
		CustomerNotes: req.Notes,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}
	appointment.Service = *service

	publishEvent(s.publisher, RoutingAppointmentBooked, AppointmentBookedEvent{
		AppointmentID: appointment.ID,
		UserID:        userID,
		ServiceID:     service.ID,
		Date:          appointment.Date,
		Time:          appointment.Time,
	})
	return appointment, nil
}

// ListForUser returns the user's appointments, latest slot first.
func (s *AppointmentService) ListForUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return s.appointments.ListByUser(ctx, userID)
}

// UpdateStatus moves an appointment to any known status.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id uint, status models.AppointmentStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return s.appointments.UpdateStatus(ctx, id, status)
}
