package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

// MenuService manages the categories and items of a restaurant.
type MenuService struct {
	restaurants ports.RestaurantRepository
	categories  ports.CategoryRepository
	items       ports.MenuItemRepository
	images      ports.ImageCleaner
	policy      *bluemonday.Policy
	logger      zerolog.Logger
}

func NewMenuService(
	restaurants ports.RestaurantRepository,
	categories ports.CategoryRepository,
	items ports.MenuItemRepository,
	images ports.ImageCleaner,
	logger zerolog.Logger,
) *MenuService {
	return &MenuService{
		restaurants: restaurants,
		categories:  categories,
		items:       items,
		images:      images,
		policy:      bluemonday.StrictPolicy(),
		logger:      logger,
	}
}

func (s *MenuService) ListCategories(ctx context.Context, restaurantID string) ([]*domain.Category, error) {
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.categories.ListByRestaurant(ctx, restaurantID)
}

func (s *MenuService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	name := s.text(in.Name)
	if len(name) == 0 {
		return nil, domain.NewValidationError("category name is required")
	}
	if _, err := s.restaurants.FindByID(ctx, in.RestaurantID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Category{
		ID:           uuid.NewString(),
		RestaurantID: in.RestaurantID,
		Name:         name,
		Order:        in.Order,
		Icon:         strings.TrimSpace(in.Icon),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.logger.Info().Str("restaurant_id", c.RestaurantID).Str("category_id", c.ID).Msg("category created")
	return c, nil
}

// DeleteCategory removes an empty category. Categories that still hold items are kept.
func (s *MenuService) DeleteCategory(ctx context.Context, restaurantID, categoryID string) error {
	if _, err := s.categories.FindByID(ctx, restaurantID, categoryID); err != nil {
		return err
	}

	n, err := s.items.CountByCategory(ctx, restaurantID, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n > 0 {
		return domain.NewValidationError("category still has menu items")
	}

	return s.categories.Delete(ctx, restaurantID, categoryID)
}

func (s *MenuService) ListItems(ctx context.Context, restaurantID, categoryID string) ([]*domain.MenuItem, error) {
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	return s.items.List(ctx, ports.MenuItemFilter{RestaurantID: restaurantID, CategoryID: categoryID})
}

func (s *MenuService) CreateItem(ctx context.Context, in ports.CreateMenuItemInput) (*domain.MenuItem, error) {
	name := s.text(in.Name)
	if len(name) == 0 {
		return nil, domain.NewValidationError("item name is required")
	}
	if in.Price < 0 {
		return nil, domain.NewValidationError("price cannot be negative")
	}

	if _, err := s.restaurants.FindByID(ctx, in.RestaurantID); err != nil {
		return nil, err
	}
	if _, err := s.categories.FindByID(ctx, in.RestaurantID, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, domain.NewValidationError("category does not exist in this restaurant")
		}
		return nil, fmt.Errorf("create item: %w", err)
	}

	lang := strings.ToLower(strings.TrimSpace(in.OriginalLanguage))
	if lang == "" {
		lang = domain.DefaultLanguage
	}

	now := time.Now().UTC()
	item := &domain.MenuItem{
		ID:               uuid.NewString(),
		RestaurantID:     in.RestaurantID,
		CategoryID:       in.CategoryID,
		Name:             name,
		Description:      s.text(in.Description),
		Price:            in.Price,
		Image:            strings.TrimSpace(in.Image),
		Tags:             s.labels(in.Tags),
		Allergens:        s.labels(in.Allergens),
		Available:        true,
		Order:            in.Order,
		OriginalLanguage: lang,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.logger.Info().Str("restaurant_id", item.RestaurantID).Str("item_id", item.ID).Msg("menu item created")
	return item, nil
}

func (s *MenuService) SetAvailability(ctx context.Context, restaurantID, itemID string, available bool) error {
	return s.items.SetAvailability(ctx, restaurantID, itemID, available)
}

// DeleteItem removes the item and schedules removal of its hosted image.
// Images outside the restaurant's own folder are left alone: the URL came
// from the client and may point at another tenant's object.
func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, itemID string) error {
	item, err := s.items.FindByID(ctx, restaurantID, itemID)
	if err != nil {
		return err
	}
	if err := s.items.Delete(ctx, restaurantID, itemID); err != nil {
		return err
	}

	if item.Image != "" && s.images != nil {
		if s.images.Owns(restaurantID, item.Image) {
			s.images.Schedule(item.Image)
		} else {
			s.logger.Debug().Str("restaurant_id", restaurantID).Str("image", item.Image).
				Msg("item image not hosted for this restaurant, keeping it")
		}
	}
	s.logger.Info().Str("restaurant_id", restaurantID).Str("item_id", itemID).Msg("menu item deleted")
	return nil
}

// text strips markup from every translation and drops empty ones.
func (s *MenuService) text(in map[string]string) domain.LocalizedText {
	out := make(domain.LocalizedText, len(in))
	for lang, v := range in {
		lang = strings.ToLower(strings.TrimSpace(lang))
		v = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
		if lang != "" && v != "" {
			out[lang] = v
		}
	}
	return out
}

func (s *MenuService) labels(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
