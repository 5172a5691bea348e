package domain

import "time"

// LocalizedText maps a language code (pt, en, es, ...) to text.
type LocalizedText map[string]string

// Category groups menu items of a restaurant.
type Category struct {
	ID           string        `json:"id" bson:"_id"`
	RestaurantID string        `json:"restaurant_id" bson:"restaurant_id"`
	Name         LocalizedText `json:"name" bson:"name"`
	Order        int           `json:"order" bson:"order"`
	Icon         string        `json:"icon" bson:"icon"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// MenuItem is a dish or drink listed under a category.
type MenuItem struct {
	ID               string        `json:"id" bson:"_id"`
	RestaurantID     string        `json:"restaurant_id" bson:"restaurant_id"`
	CategoryID       string        `json:"category_id" bson:"category_id"`
	Name             LocalizedText `json:"name" bson:"name"`
	Description      LocalizedText `json:"description" bson:"description"`
	Price            float64       `json:"price" bson:"price"`
	Image            string        `json:"image" bson:"image"`
	Tags             []string      `json:"tags" bson:"tags"`
	Allergens        []string      `json:"allergens" bson:"allergens"`
	Available        bool          `json:"available" bson:"available"`
	Order            int           `json:"order" bson:"order"`
	OriginalLanguage string        `json:"original_language" bson:"original_language"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" bson:"updated_at"`
}

// PublicMenu is the read-only view served to diners.
type PublicMenu struct {
	Restaurant *Restaurant `json:"restaurant"`
	Categories []*Category `json:"categories"`
	Items      []*MenuItem `json:"items"`
}
