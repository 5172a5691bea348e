package service

import (
	"context"
	"fmt"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/metrics"
	"github.com/menuglobal/menu-admin/internal/pkg/slug"
)

// DefaultMaxSlugProbes caps the suffix search so a crowded base name cannot
// turn one request into unbounded store traffic.
const DefaultMaxSlugProbes = 1000

// SlugChecker answers whether a slug is already used by a persisted restaurant.
type SlugChecker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// SlugAllocator pre-computes a free slug for a new restaurant. The answer is
// best effort: probe and insert are not atomic, so the store's unique index
// has the final word.
type SlugAllocator struct {
	checker   SlugChecker
	maxProbes int
}

func NewSlugAllocator(checker SlugChecker, maxProbes int) *SlugAllocator {
	if maxProbes <= 0 {
		maxProbes = DefaultMaxSlugProbes
	}
	return &SlugAllocator{checker: checker, maxProbes: maxProbes}
}

// Allocate returns the base slug of name if unused, otherwise the first free
// of base-1, base-2, ... Exceeding the probe budget yields domain.ErrSlugExhausted.
func (a *SlugAllocator) Allocate(ctx context.Context, name string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		return "", domain.NewValidationError("restaurant name must contain letters or digits")
	}

	candidate := base
	for n := 0; n < a.maxProbes; n++ {
		if n > 0 {
			candidate = slug.WithSuffix(base, n)
		}

		taken, err := a.checker.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		metrics.SlugCollisionsTotal.WithLabelValues("probe").Inc()
	}

	return "", fmt.Errorf("allocate slug for %q after %d probes: %w", base, a.maxProbes, domain.ErrSlugExhausted)
}
