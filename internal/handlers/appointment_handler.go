package handlers

import (
	"fmt"
	"log"

	"autocare/internal/middleware"
	"autocare/internal/models"
	"autocare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles booking and listing of appointments.
type AppointmentHandler struct {
	appointments *services.AppointmentService
	validate     *validator.Validate
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments, validate: newValidator()}
}

// RegisterRoutes registers the appointment routes on the /appointments group.
// router must run AuthRequired.
func (h *AppointmentHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/book/:service_id", h.HandleBook)
	router.Get("/mine", h.HandleMyAppointments)
}

// RegisterAdminRoutes registers the appointment maintenance routes.
func (h *AppointmentHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Patch("/appointments/:id/status", h.HandleUpdateStatus)
}

// HandleBook books the service for the authenticated user.
func (h *AppointmentHandler) HandleBook(c *fiber.Ctx) error {
	serviceID, err := paramID(c, "service_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	var req services.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing booking request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	appointment, err := h.appointments.Book(c.UserContext(), middleware.UserID(c), serviceID, req)
	if err != nil {
		return fail(c, "Could not book appointment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     fmt.Sprintf("Appointment for %s booked successfully!", appointment.Service.Name),
		"appointment": appointment,
	})
}

// HandleMyAppointments lists the authenticated user's appointments.
func (h *AppointmentHandler) HandleMyAppointments(c *fiber.Ctx) error {
	appointments, err := h.appointments.ListForUser(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return fail(c, "Could not retrieve appointments", err)
	}
	return c.JSON(appointments)
}

// HandleUpdateStatus sets the status of any appointment.
func (h *AppointmentHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	var updateData struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return validationFailed(c, err)
	}
	if err := h.validate.Struct(updateData); err != nil {
		return validationFailed(c, err)
	}

	if err := h.appointments.UpdateStatus(c.UserContext(), id, models.AppointmentStatus(updateData.Status)); err != nil {
		return fail(c, "Appointment update failed", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Appointment %d status updated successfully to %s", id, updateData.Status),
	})
}
