package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Identities
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	mu    sync.Mutex
	users map[string]*domain.Identity // keyed by ID
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{users: make(map[string]*domain.Identity)}
}

func cloneIdentity(u *domain.Identity) *domain.Identity {
	clone := *u
	return &clone
}

func (r *stubIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == identity.Email {
			return domain.ErrEmailTaken
		}
	}
	r.users[identity.ID] = cloneIdentity(identity)
	return nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneIdentity(u), nil
		}
	}
	return nil, domain.ErrIdentityNotFound
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return cloneIdentity(u), nil
}

func (r *stubIdentityRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubIdentityRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrIdentityNotFound
	}
	u.Active = active
	return nil
}

// ---------------------------------------------------------------------------
// Restaurants
// ---------------------------------------------------------------------------

// stubRestaurantRepo enforces slug uniqueness on Create the way the unique
// index does in Mongo.
type stubRestaurantRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Restaurant
	createErr   error // if set, Create returns this error
	probes      []string
	beforeWrite func() // runs between the uniqueness check's lock release and the write
}

func newStubRestaurantRepo() *stubRestaurantRepo {
	return &stubRestaurantRepo{byID: make(map[string]*domain.Restaurant)}
}

func (r *stubRestaurantRepo) seed(slugs ...string) {
	for _, s := range slugs {
		r.byID["seed-"+s] = &domain.Restaurant{ID: "seed-" + s, Name: s, Slug: s}
	}
}

func (r *stubRestaurantRepo) Create(_ context.Context, rest *domain.Restaurant) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.Slug == rest.Slug {
			return domain.ErrSlugTaken
		}
	}
	clone := *rest
	r.byID[rest.ID] = &clone
	return nil
}

func (r *stubRestaurantRepo) List(_ context.Context) ([]*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Restaurant, 0, len(r.byID))
	for _, v := range r.byID {
		clone := *v
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubRestaurantRepo) FindByID(_ context.Context, id string) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRestaurantNotFound
	}
	clone := *v
	return &clone, nil
}

func (r *stubRestaurantRepo) FindBySlug(_ context.Context, slug string) (*domain.Restaurant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.byID {
		if v.Slug == slug {
			clone := *v
			return &clone, nil
		}
	}
	return nil, domain.ErrRestaurantNotFound
}

func (r *stubRestaurantRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes = append(r.probes, slug)
	for _, v := range r.byID {
		if v.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// ---------------------------------------------------------------------------
// Categories and items
// ---------------------------------------------------------------------------

type stubCategoryRepo struct {
	byID map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{byID: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) error {
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.byID {
		if c.RestaurantID == restaurantID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, restaurantID, id string) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok || c.RestaurantID != restaurantID {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, restaurantID, id string) error {
	c, ok := r.byID[id]
	if !ok || c.RestaurantID != restaurantID {
		return domain.ErrCategoryNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubItemRepo struct {
	byID map[string]*domain.MenuItem
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{byID: make(map[string]*domain.MenuItem)}
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.MenuItem) error {
	clone := *item
	r.byID[item.ID] = &clone
	return nil
}

func (r *stubItemRepo) List(_ context.Context, f ports.MenuItemFilter) ([]*domain.MenuItem, error) {
	var out []*domain.MenuItem
	for _, it := range r.byID {
		if f.RestaurantID != "" && it.RestaurantID != f.RestaurantID {
			continue
		}
		if f.CategoryID != "" && it.CategoryID != f.CategoryID {
			continue
		}
		if f.AvailableOnly && !it.Available {
			continue
		}
		clone := *it
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, restaurantID, id string) (*domain.MenuItem, error) {
	it, ok := r.byID[id]
	if !ok || it.RestaurantID != restaurantID {
		return nil, domain.ErrMenuItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubItemRepo) SetAvailability(_ context.Context, restaurantID, id string, available bool) error {
	it, ok := r.byID[id]
	if !ok || it.RestaurantID != restaurantID {
		return domain.ErrMenuItemNotFound
	}
	it.Available = available
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, restaurantID, id string) error {
	it, ok := r.byID[id]
	if !ok || it.RestaurantID != restaurantID {
		return domain.ErrMenuItemNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubItemRepo) CountByCategory(_ context.Context, restaurantID, categoryID string) (int64, error) {
	var n int64
	for _, it := range r.byID {
		if it.RestaurantID == restaurantID && it.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Collaborators
// ---------------------------------------------------------------------------

type stubCleaner struct {
	scheduled []string
}

const stubImageBase = "https://cdn.example.com/"

func (c *stubCleaner) Owns(restaurantID, url string) bool {
	return strings.HasPrefix(url, stubImageBase+domain.ImageFolder(restaurantID)+"/")
}

func (c *stubCleaner) Schedule(url string) {
	c.scheduled = append(c.scheduled, url)
}

type stubIdempotency struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]string)}
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, key, restaurantID string) error {
	s.keys[key] = restaurantID
	return nil
}
