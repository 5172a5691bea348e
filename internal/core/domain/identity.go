package domain

import (
	"strings"
	"time"
)

const (
	RoleOwner   = "owner"
	RoleManager = "manager"
)

// Identity models an authenticatable staff account. Identities are never
// deleted, only deactivated.
type Identity struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidRole reports whether role is one of the two fixed roles.
func ValidRole(role string) bool {
	return role == RoleOwner || role == RoleManager
}

// Validate checks the role/tenant invariant: a restaurant reference is
// present iff the identity is a manager.
func (i *Identity) Validate() error {
	switch {
	case i.Email == "" || !strings.Contains(i.Email, "@"):
		return NewValidationError("a valid email is required")
	case strings.TrimSpace(i.Name) == "":
		return NewValidationError("name is required")
	case !ValidRole(i.Role):
		return NewValidationError("role must be owner or manager")
	case i.Role == RoleManager && i.RestaurantID == "":
		return NewValidationError("managers must belong to a restaurant")
	case i.Role == RoleOwner && i.RestaurantID != "":
		return NewValidationError("owners cannot be bound to a restaurant")
	}
	return nil
}

// SessionClaims is the identity snapshot carried inside a session token.
type SessionClaims struct {
	IdentityID   string    `json:"identity_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RestaurantID string    `json:"restaurant_id,omitempty"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ClaimsFor builds the token claims for an identity.
func ClaimsFor(i *Identity) SessionClaims {
	return SessionClaims{
		IdentityID:   i.ID,
		Email:        i.Email,
		Role:         i.Role,
		RestaurantID: i.RestaurantID,
	}
}

// CanAccessRestaurant reports whether the caller may manage the given restaurant.
// Owners manage every restaurant; managers only their own.
func (c *SessionClaims) CanAccessRestaurant(restaurantID string) bool {
	if c == nil {
		return false
	}
	if c.Role == RoleOwner {
		return true
	}
	return c.Role == RoleManager && c.RestaurantID != "" && c.RestaurantID == restaurantID
}
