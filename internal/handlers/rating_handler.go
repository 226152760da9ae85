package handlers

import (
	"log"

	"autocare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// RatingHandler serves the public reviews page and rating submission.
type RatingHandler struct {
	ratings  *services.RatingService
	validate *validator.Validate
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratings *services.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings, validate: newValidator()}
}

// RegisterRoutes registers the review routes.
func (h *RatingHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/reviews", h.HandleReviews)
	router.Post("/reviews", h.HandleSubmitRating)
}

// HandleReviews returns the summaries and recent ratings.
func (h *RatingHandler) HandleReviews(c *fiber.Ctx) error {
	page, err := h.ratings.ReviewsPage(c.UserContext())
	if err != nil {
		return fail(c, "Could not retrieve reviews", err)
	}
	return c.JSON(page)
}

// HandleSubmitRating stores a rating from any visitor.
func (h *RatingHandler) HandleSubmitRating(c *fiber.Ctx) error {
	var req services.SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing rating request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please correct the errors below.",
			"error":   err.Error(),
		})
	}
	// An empty service select in a form decodes to 0, which names no service.
	if req.ServiceID != nil && *req.ServiceID == 0 {
		req.ServiceID = nil
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	rating, err := h.ratings.Submit(c.UserContext(), req)
	if err != nil {
		return fail(c, "Please correct the errors below.", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thank you for your feedback!",
		"rating":  rating,
	})
}
