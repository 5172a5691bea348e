package ports

import (
	"context"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// CreateIdentityInput carries the fields of an administrative account creation.
type CreateIdentityInput struct {
	Email        string
	Name         string
	Password     string
	Role         string
	RestaurantID string
}

// AuthService covers login and account administration on top of the credential primitives.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.Identity, error)
	CreateIdentity(ctx context.Context, input CreateIdentityInput) (*domain.Identity, error)
	ChangePassword(ctx context.Context, identityID, current, next string) error
	Deactivate(ctx context.Context, identityID string) error
	Me(ctx context.Context, identityID string) (*domain.Identity, error)
}

// TokenVerifier turns a presented bearer value back into claims.
type TokenVerifier interface {
	VerifyToken(token string) (*domain.SessionClaims, error)
}
