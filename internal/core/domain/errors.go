package domain

import "errors"

// Authentication and authorization failures. Handlers collapse all of them
// into one generic unauthorized response.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Conflicts raised by the record store's uniqueness constraints.
var (
	ErrEmailTaken    = errors.New("email already in use")
	ErrSlugTaken     = errors.New("slug already in use")
	ErrSlugExhausted = errors.New("no free slug available for this name")
)

var (
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrMenuItemNotFound   = errors.New("menu item not found")
)

// ValidationError carries a message that is safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsAuthFailure reports whether err belongs to the authentication or
// authorization family.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInvalidCredentials)
}
