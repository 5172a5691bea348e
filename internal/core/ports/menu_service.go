package ports

import (
	"context"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

type CreateCategoryInput struct {
	RestaurantID string
	Name         map[string]string
	Order        int
	Icon         string
}

type CreateMenuItemInput struct {
	RestaurantID     string
	CategoryID       string
	Name             map[string]string
	Description      map[string]string
	Price            float64
	Image            string
	Tags             []string
	Allergens        []string
	Order            int
	OriginalLanguage string
}

type MenuService interface {
	ListCategories(ctx context.Context, restaurantID string) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, restaurantID, categoryID string) error

	ListItems(ctx context.Context, restaurantID, categoryID string) ([]*domain.MenuItem, error)
	CreateItem(ctx context.Context, input CreateMenuItemInput) (*domain.MenuItem, error)
	SetAvailability(ctx context.Context, restaurantID, itemID string, available bool) error
	DeleteItem(ctx context.Context, restaurantID, itemID string) error
}
