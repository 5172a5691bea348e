package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
	"github.com/menuglobal/menu-admin/internal/metrics"
)

// maxCreateAttempts bounds how often a creation re-allocates after losing a
// slug to a concurrent insert.
const maxCreateAttempts = 5

// IdempotencyStore remembers which restaurant an idempotency key created.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, bool, error)
	Remember(ctx context.Context, key, restaurantID string) error
}

type RestaurantService struct {
	repo       ports.RestaurantRepository
	categories ports.CategoryRepository
	items      ports.MenuItemRepository
	slugs      *SlugAllocator
	idem       IdempotencyStore
	logger     zerolog.Logger
}

func NewRestaurantService(
	repo ports.RestaurantRepository,
	categories ports.CategoryRepository,
	items ports.MenuItemRepository,
	slugs *SlugAllocator,
	idem IdempotencyStore,
	logger zerolog.Logger,
) *RestaurantService {
	return &RestaurantService{
		repo:       repo,
		categories: categories,
		items:      items,
		slugs:      slugs,
		idem:       idem,
		logger:     logger,
	}
}

func (s *RestaurantService) List(ctx context.Context) ([]*domain.Restaurant, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return list, nil
}

func (s *RestaurantService) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RestaurantService) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return s.repo.FindBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// Create validates input, allocates a unique slug and persists the restaurant.
// When the insert loses the slug to a concurrent creation the slug is
// re-allocated, up to maxCreateAttempts times.
func (s *RestaurantService) Create(ctx context.Context, in ports.CreateRestaurantInput) (*ports.RestaurantResult, error) {
	r, err := newRestaurant(in)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if existing := s.replay(ctx, in.IdempotencyKey); existing != nil {
			return &ports.RestaurantResult{Restaurant: existing, AlreadyExisted: true}, nil
		}
	}

	for attempt := 1; ; attempt++ {
		r.Slug, err = s.slugs.Allocate(ctx, r.Name)
		if err != nil {
			return nil, err
		}

		err = s.repo.Create(ctx, r)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrSlugTaken) {
			return nil, fmt.Errorf("create restaurant: %w", err)
		}

		metrics.SlugCollisionsTotal.WithLabelValues("insert").Inc()
		s.logger.Warn().Str("slug", r.Slug).Int("attempt", attempt).Msg("slug claimed concurrently")
		if attempt >= maxCreateAttempts {
			return nil, fmt.Errorf("create restaurant: %w", domain.ErrSlugTaken)
		}
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, in.IdempotencyKey, r.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember idempotency key")
		}
	}

	metrics.RestaurantsCreatedTotal.Inc()
	s.logger.Info().Str("restaurant_id", r.ID).Str("slug", r.Slug).Msg("restaurant created")
	return &ports.RestaurantResult{Restaurant: r}, nil
}

// replay returns the restaurant previously created under key, or nil.
func (s *RestaurantService) replay(ctx context.Context, key string) *domain.Restaurant {
	id, found, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !found {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency key points to a missing restaurant")
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("restaurant_id", id).Msg("idempotent replay")
	return existing
}

// PublicMenu returns the diner-facing menu: categories and available items.
func (s *RestaurantService) PublicMenu(ctx context.Context, slug string) (*domain.PublicMenu, error) {
	r, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	categories, err := s.categories.ListByRestaurant(ctx, r.ID)
	if err != nil {
		return nil, fmt.Errorf("public menu: %w", err)
	}
	items, err := s.items.List(ctx, ports.MenuItemFilter{RestaurantID: r.ID, AvailableOnly: true})
	if err != nil {
		return nil, fmt.Errorf("public menu: %w", err)
	}

	return &domain.PublicMenu{Restaurant: r, Categories: categories, Items: items}, nil
}

func newRestaurant(in ports.CreateRestaurantInput) (*domain.Restaurant, error) {
	name := strings.TrimSpace(in.Name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, domain.NewValidationError("restaurant name is required")
	}

	color := strings.TrimSpace(in.PrimaryColor)
	if color == "" {
		color = domain.DefaultPrimaryColor
	}
	if !domain.IsValidHexColor(color) {
		return nil, domain.NewValidationError("primary color must be a hex color such as #667eea")
	}

	lang := strings.ToLower(strings.TrimSpace(in.DefaultLanguage))
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	enabled := normalizeLanguages(in.EnabledLanguages)
	if !slices.Contains(enabled, lang) {
		enabled = append([]string{lang}, enabled...)
	}

	now := time.Now().UTC()
	return &domain.Restaurant{
		ID:               uuid.NewString(),
		Name:             name,
		PrimaryColor:     color,
		Logo:             strings.TrimSpace(in.Logo),
		DefaultLanguage:  lang,
		EnabledLanguages: enabled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

func normalizeLanguages(langs []string) []string {
	out := make([]string, 0, len(langs))
	for _, l := range langs {
		l = strings.ToLower(strings.TrimSpace(l))
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	return out
}
