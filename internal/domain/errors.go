package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound             = errors.New("resource not found")
	ErrItemNotFound         = errors.New("inventory item not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailAlreadyExists   = errors.New("email is already registered")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrInsufficientQuantity = errors.New("insufficient quantity in stock")
	ErrDuplicate            = errors.New("duplicate resource")
	ErrUnauthorized         = errors.New("not authenticated")
	ErrForbidden            = errors.New("access denied")
	ErrNotConfigured        = errors.New("persistence store is not configured")
)
