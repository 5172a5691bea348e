package ports

import (
	"context"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// RestaurantRepository persists tenants. Create is the source of truth for
// slug uniqueness and reports a conflict as domain.ErrSlugTaken.
type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	// List returns every restaurant, newest first.
	List(ctx context.Context) ([]*domain.Restaurant, error)
	FindByID(ctx context.Context, id string) (*domain.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}
