package ports

import (
	"context"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	// ListByRestaurant returns categories sorted by their display order.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Category, error)
	FindByID(ctx context.Context, restaurantID, id string) (*domain.Category, error)
	Delete(ctx context.Context, restaurantID, id string) error
}

// MenuItemFilter narrows ListItems. Zero values mean "no filter".
type MenuItemFilter struct {
	RestaurantID  string
	CategoryID    string
	AvailableOnly bool
}

type MenuItemRepository interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	List(ctx context.Context, filter MenuItemFilter) ([]*domain.MenuItem, error)
	FindByID(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, restaurantID, id string, available bool) error
	Delete(ctx context.Context, restaurantID, id string) error
	CountByCategory(ctx context.Context, restaurantID, categoryID string) (int64, error)
}
