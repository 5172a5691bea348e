package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

type RestaurantRepository struct {
	src Source
}

func NewRestaurantRepository(src Source) *RestaurantRepository {
	return &RestaurantRepository{src: src}
}

func (r *RestaurantRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.src.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionRestaurants), nil
}

// Create inserts the restaurant. A slug already present, even one inserted
// an instant earlier by a concurrent request, yields domain.ErrSlugTaken.
func (r *RestaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := coll.InsertOne(ctx, rest); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// List returns all restaurants, newest first.
func (r *RestaurantRepository) List(ctx context.Context) ([]*domain.Restaurant, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	out := make([]*domain.Restaurant, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode restaurants: %w", err)
	}
	return out, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *RestaurantRepository) FindBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *RestaurantRepository) findOne(ctx context.Context, filter bson.M) (*domain.Restaurant, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rest domain.Restaurant
	if err := coll.FindOne(ctx, filter).Decode(&rest); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}
	return &rest, nil
}

// SlugExists reports whether any restaurant already uses slug.
func (r *RestaurantRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return false, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := coll.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return n > 0, nil
}
