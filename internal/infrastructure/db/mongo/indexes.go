package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionIdentities  = "identities"
	collectionRestaurants = "restaurants"
	collectionCategories  = "categories"
	collectionMenuItems   = "menu_items"
)

// indexModels lists the indexes per collection. The unique indexes on
// identities.email and restaurants.slug are what ultimately keep those
// values unique under concurrent writes.
func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		collectionIdentities: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
		},
		collectionRestaurants: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_slug")},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
		collectionCategories: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "order", Value: 1}}},
		},
		collectionMenuItems: {
			{Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "category_id", Value: 1}, {Key: "order", Value: 1}}},
		},
	}
}
