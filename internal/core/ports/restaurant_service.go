package ports

import (
	"context"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// CreateRestaurantInput carries the caller supplied fields; zero values get defaults.
type CreateRestaurantInput struct {
	Name             string
	PrimaryColor     string
	Logo             string
	DefaultLanguage  string
	EnabledLanguages []string
	IdempotencyKey   string
}

// RestaurantResult is returned by Create.
type RestaurantResult struct {
	Restaurant *domain.Restaurant
	// AlreadyExisted is true when the idempotency key matched an earlier creation.
	AlreadyExisted bool
}

type RestaurantService interface {
	List(ctx context.Context) ([]*domain.Restaurant, error)
	Create(ctx context.Context, input CreateRestaurantInput) (*RestaurantResult, error)
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error)
	PublicMenu(ctx context.Context, slug string) (*domain.PublicMenu, error)
}
