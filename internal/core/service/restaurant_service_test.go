package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

type restaurantFixture struct {
	svc   *RestaurantService
	repo  *stubRestaurantRepo
	cats  *stubCategoryRepo
	items *stubItemRepo
	idem  *stubIdempotency
}

func newRestaurantFixture() *restaurantFixture {
	repo := newStubRestaurantRepo()
	cats := newStubCategoryRepo()
	items := newStubItemRepo()
	idem := newStubIdempotency()
	return &restaurantFixture{
		svc:   NewRestaurantService(repo, cats, items, NewSlugAllocator(repo, 0), idem, discardLogger),
		repo:  repo,
		cats:  cats,
		items: items,
		idem:  idem,
	}
}

func TestRestaurantService_Create_Defaults(t *testing.T) {
	f := newRestaurantFixture()

	res, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "  Café Lisboa  "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	r := res.Restaurant
	if r.Name != "Café Lisboa" || r.Slug != "cafe-lisboa" {
		t.Fatalf("unexpected name/slug: %q %q", r.Name, r.Slug)
	}
	if r.PrimaryColor != domain.DefaultPrimaryColor || r.DefaultLanguage != "pt" {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if len(r.EnabledLanguages) != 1 || r.EnabledLanguages[0] != "pt" {
		t.Fatalf("expected enabled languages [pt], got %v", r.EnabledLanguages)
	}
	if res.AlreadyExisted {
		t.Fatalf("fresh creation must not be flagged as replay")
	}
}

func TestRestaurantService_Create_DefaultLanguageIsEnabled(t *testing.T) {
	f := newRestaurantFixture()

	res, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{
		Name:             "O Galito",
		DefaultLanguage:  "EN",
		EnabledLanguages: []string{"pt", "es", "pt", " "},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got := res.Restaurant.EnabledLanguages
	if len(got) != 3 || got[0] != "en" || got[1] != "pt" || got[2] != "es" {
		t.Fatalf("unexpected enabled languages: %v", got)
	}
}

func TestRestaurantService_Create_RepeatedNames(t *testing.T) {
	f := newRestaurantFixture()

	want := []string{"cafe-lisboa", "cafe-lisboa-1", "cafe-lisboa-2"}
	for _, slug := range want {
		res, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Café Lisboa"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if res.Restaurant.Slug != slug {
			t.Fatalf("expected %s, got %s", slug, res.Restaurant.Slug)
		}
	}
}

func TestRestaurantService_Create_Validation(t *testing.T) {
	f := newRestaurantFixture()

	cases := map[string]ports.CreateRestaurantInput{
		"empty name":   {Name: ""},
		"blank name":   {Name: "    "},
		"one rune":     {Name: " é "},
		"bad color":    {Name: "Casa", PrimaryColor: "blue"},
		"no slug base": {Name: "!!!"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var ve *domain.ValidationError
			if _, err := f.svc.Create(context.Background(), in); !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
	if len(f.repo.byID) != 0 {
		t.Fatalf("nothing must be persisted on validation failure")
	}
}

func TestRestaurantService_Create_ReallocatesAfterLostRace(t *testing.T) {
	f := newRestaurantFixture()

	// A concurrent request claims the base slug between our probe and our insert.
	var once sync.Once
	f.repo.beforeWrite = func() {
		once.Do(func() { f.repo.seed("cafe-lisboa") })
	}

	res, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Café Lisboa"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Restaurant.Slug != "cafe-lisboa-1" {
		t.Fatalf("expected re-allocated slug cafe-lisboa-1, got %s", res.Restaurant.Slug)
	}
}

func TestRestaurantService_Create_ConcurrentSameName(t *testing.T) {
	f := newRestaurantFixture()

	// Hold both first inserts until both requests have probed, so they race
	// for the same candidate.
	var gate sync.WaitGroup
	gate.Add(2)
	var writes atomic.Int32
	f.repo.beforeWrite = func() {
		if writes.Add(1) <= 2 {
			gate.Done()
			gate.Wait()
		}
	}

	var wg sync.WaitGroup
	slugs := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Café Lisboa"})
			errs[i] = err
			if err == nil {
				slugs[i] = res.Restaurant.Slug
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	sort.Strings(slugs)
	if slugs[0] != "cafe-lisboa" || slugs[1] != "cafe-lisboa-1" {
		t.Fatalf("expected distinct slugs [cafe-lisboa cafe-lisboa-1], got %v", slugs)
	}
	if writes.Load() != 3 {
		t.Fatalf("expected the losing insert to be rejected and retried once, got %d writes", writes.Load())
	}
}

func TestRestaurantService_Create_GivesUpAfterRepeatedConflicts(t *testing.T) {
	f := newRestaurantFixture()
	f.repo.createErr = domain.ErrSlugTaken

	_, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Café Lisboa"})
	if !errors.Is(err, domain.ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestRestaurantService_Create_StoreFailure(t *testing.T) {
	f := newRestaurantFixture()
	boom := errors.New("connection reset")
	f.repo.createErr = boom

	if _, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Casa"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestRestaurantService_Create_IdempotentReplay(t *testing.T) {
	f := newRestaurantFixture()
	in := ports.CreateRestaurantInput{Name: "Casa Nova", IdempotencyKey: "key-1"}

	first, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := f.svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !second.AlreadyExisted || second.Restaurant.ID != first.Restaurant.ID {
		t.Fatalf("expected replay of %s, got %+v", first.Restaurant.ID, second)
	}
	if len(f.repo.byID) != 1 {
		t.Fatalf("replay must not create a second restaurant")
	}
}

func TestRestaurantService_Create_IdempotencyStoreDown(t *testing.T) {
	f := newRestaurantFixture()
	f.idem.lookupErr = errors.New("redis down")

	res, err := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Casa Nova", IdempotencyKey: "key-1"})
	if err != nil {
		t.Fatalf("creation must not depend on the idempotency store: %v", err)
	}
	if res.AlreadyExisted {
		t.Fatalf("unexpected replay")
	}
}

func TestRestaurantService_PublicMenu(t *testing.T) {
	f := newRestaurantFixture()
	res, _ := f.svc.Create(context.Background(), ports.CreateRestaurantInput{Name: "Café Lisboa"})
	rid := res.Restaurant.ID

	f.cats.byID["c2"] = &domain.Category{ID: "c2", RestaurantID: rid, Order: 2}
	f.cats.byID["c1"] = &domain.Category{ID: "c1", RestaurantID: rid, Order: 1}
	f.items.byID["i1"] = &domain.MenuItem{ID: "i1", RestaurantID: rid, CategoryID: "c1", Available: true}
	f.items.byID["i2"] = &domain.MenuItem{ID: "i2", RestaurantID: rid, CategoryID: "c1", Available: false}
	f.items.byID["i3"] = &domain.MenuItem{ID: "i3", RestaurantID: "other", CategoryID: "x", Available: true}

	menu, err := f.svc.PublicMenu(context.Background(), "Cafe-Lisboa")
	if err != nil {
		t.Fatalf("PublicMenu: %v", err)
	}
	if menu.Restaurant.ID != rid {
		t.Fatalf("wrong restaurant")
	}
	if len(menu.Categories) != 2 || menu.Categories[0].ID != "c1" {
		t.Fatalf("expected ordered categories, got %+v", menu.Categories)
	}
	if len(menu.Items) != 1 || menu.Items[0].ID != "i1" {
		t.Fatalf("expected only the available item, got %+v", menu.Items)
	}

	if _, err := f.svc.PublicMenu(context.Background(), "nope"); !errors.Is(err, domain.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}
