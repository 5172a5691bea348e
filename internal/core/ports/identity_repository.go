package ports

import (
	"context"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// IdentityRepository persists staff accounts. Create must enforce email
// uniqueness and report a lost race as domain.ErrEmailTaken.
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.Identity) error
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetActive(ctx context.Context, id string, active bool) error
}
