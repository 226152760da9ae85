package handlers

import (
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"

	"autocare/internal/money"
	"autocare/internal/repositories"
	"autocare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// newValidator returns a validator that compares decimal amounts as numbers,
// so tags like gte=0 work on prices.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// validationFailed renders validator errors as one message per field.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["request"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// statusFor maps service and repository errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPaymentMethod),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidSlot),
		errors.Is(err, services.ErrInvalidProduct),
		errors.Is(err, services.ErrInvalidService),
		errors.Is(err, services.ErrNoSession):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// fail logs err and answers with the mapped status. Internal errors are not
// echoed to the client.
func fail(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	log.Printf("%s: %v", message, err)
	if status == fiber.StatusInternalServerError {
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s %q", name, c.Params(name))
	}
	return uint(id), nil
}

// parseBody decodes a JSON or form body into out. An empty body leaves out
// untouched.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

func amount(d decimal.Decimal) string {
	return money.Format(d)
}
