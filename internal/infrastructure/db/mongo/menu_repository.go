package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

var byOrder = bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}

// CategoryRepository stores categories. Every lookup is scoped by restaurant.
type CategoryRepository struct {
	src Source
}

func NewCategoryRepository(src Source) *CategoryRepository {
	return &CategoryRepository{src: src}
}

func (r *CategoryRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.src.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionCategories), nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*domain.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{"restaurant_id": restaurantID}, options.Find().SetSort(byOrder))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]*domain.Category, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, restaurantID, id string) (*domain.Category, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Category
	if err := coll.FindOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, restaurantID, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

// MenuItemRepository stores menu items. Every lookup is scoped by restaurant.
type MenuItemRepository struct {
	src Source
}

func NewMenuItemRepository(src Source) *MenuItemRepository {
	return &MenuItemRepository{src: src}
}

func (r *MenuItemRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.src.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionMenuItems), nil
}

func (r *MenuItemRepository) Create(ctx context.Context, item *domain.MenuItem) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert menu item: %w", err)
	}
	return nil
}

func itemFilter(f ports.MenuItemFilter) bson.M {
	filter := bson.M{"restaurant_id": f.RestaurantID}
	if f.CategoryID != "" {
		filter["category_id"] = f.CategoryID
	}
	if f.AvailableOnly {
		filter["available"] = true
	}
	return filter
}

func (r *MenuItemRepository) List(ctx context.Context, f ports.MenuItemFilter) ([]*domain.MenuItem, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, itemFilter(f), options.Find().SetSort(byOrder))
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	out := make([]*domain.MenuItem, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode menu items: %w", err)
	}
	return out, nil
}

func (r *MenuItemRepository) FindByID(ctx context.Context, restaurantID, id string) (*domain.MenuItem, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var item domain.MenuItem
	if err := coll.FindOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("find menu item: %w", err)
	}
	return &item, nil
}

func (r *MenuItemRepository) SetAvailability(ctx context.Context, restaurantID, id string, available bool) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "restaurant_id": restaurantID},
		bson.M{"$set": bson.M{"available": available, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuItemRepository) Delete(ctx context.Context, restaurantID, id string) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := coll.DeleteOne(ctx, bson.M{"_id": id, "restaurant_id": restaurantID})
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMenuItemNotFound
	}
	return nil
}

func (r *MenuItemRepository) CountByCategory(ctx context.Context, restaurantID, categoryID string) (int64, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return 0, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, bson.M{"restaurant_id": restaurantID, "category_id": categoryID})
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	return n, nil
}
