package services

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrNoSession       = errors.New("session id is required")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidAction   = errors.New("action must be increase, decrease or remove")
	ErrEmptyCart       = errors.New("cart is empty")

	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")

	ErrInvalidRating  = errors.New("invalid rating")
	ErrInvalidSlot    = errors.New("invalid appointment date or time")
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidService = errors.New("invalid service")
)
