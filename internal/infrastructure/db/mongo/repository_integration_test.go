//go:build integration

package mongo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

func setupProvider(t *testing.T) *Provider {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	p := NewProvider(Config{URI: uri, Database: "menu_it_" + uuid.NewString()[:8]}, EnsureIndexes)
	t.Cleanup(func() { _ = p.Close(ctx) })
	return p
}

func TestIntegration_Repositories(t *testing.T) {
	p := setupProvider(t)
	ctx := context.Background()

	t.Run("slug uniqueness is enforced by the store", func(t *testing.T) {
		repo := NewRestaurantRepository(p)
		now := time.Now().UTC()

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = repo.Create(ctx, &domain.Restaurant{ID: uuid.NewString(), Name: "Café", Slug: "cafe", CreatedAt: now})
			}(i)
		}
		wg.Wait()

		var ok, taken int
		for _, err := range errs {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrSlugTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 7, taken)

		exists, err := repo.SlugExists(ctx, "cafe")
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := repo.FindBySlug(ctx, "cafe")
		require.NoError(t, err)
		assert.Equal(t, "Café", got.Name)
	})

	t.Run("email uniqueness is enforced by the store", func(t *testing.T) {
		repo := NewIdentityRepository(p)
		first := &domain.Identity{ID: uuid.NewString(), Email: "ana@example.com", Name: "Ana", Role: domain.RoleOwner, Active: true}
		second := &domain.Identity{ID: uuid.NewString(), Email: "ana@example.com", Name: "Ana 2", Role: domain.RoleOwner, Active: true}

		require.NoError(t, repo.Create(ctx, first))
		assert.ErrorIs(t, repo.Create(ctx, second), domain.ErrEmailTaken)

		require.NoError(t, repo.SetActive(ctx, first.ID, false))
		got, err := repo.FindByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.False(t, got.Active)

		assert.ErrorIs(t, repo.SetActive(ctx, "missing", false), domain.ErrIdentityNotFound)
	})

	t.Run("menu queries are scoped by restaurant", func(t *testing.T) {
		cats := NewCategoryRepository(p)
		items := NewMenuItemRepository(p)

		require.NoError(t, cats.Create(ctx, &domain.Category{ID: "c1", RestaurantID: "r1", Name: domain.LocalizedText{"pt": "Sopas"}}))
		require.NoError(t, items.Create(ctx, &domain.MenuItem{ID: "i1", RestaurantID: "r1", CategoryID: "c1", Available: true}))
		require.NoError(t, items.Create(ctx, &domain.MenuItem{ID: "i2", RestaurantID: "r1", CategoryID: "c1", Available: false}))

		_, err := cats.FindByID(ctx, "r2", "c1")
		assert.ErrorIs(t, err, domain.ErrCategoryNotFound)

		available, err := items.List(ctx, ports.MenuItemFilter{RestaurantID: "r1", AvailableOnly: true})
		require.NoError(t, err)
		require.Len(t, available, 1)
		assert.Equal(t, "i1", available[0].ID)

		n, err := items.CountByCategory(ctx, "r1", "c1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		assert.ErrorIs(t, items.Delete(ctx, "r2", "i1"), domain.ErrMenuItemNotFound)
		require.NoError(t, items.Delete(ctx, "r1", "i1"))
	})
}
