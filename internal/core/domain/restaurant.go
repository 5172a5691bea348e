package domain

import (
	"regexp"
	"time"
)

const (
	DefaultPrimaryColor = "#667eea"
	DefaultLanguage     = "pt"
)

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// IsValidHexColor reports whether s is a #rgb or #rrggbb colour.
func IsValidHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// ImageFolder is the storage folder holding a restaurant's uploaded images.
func ImageFolder(restaurantID string) string {
	return "restaurants/" + restaurantID
}

// Restaurant is a tenant. Its slug is assigned once at creation and never changes.
type Restaurant struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Slug             string    `json:"slug" bson:"slug"`
	PrimaryColor     string    `json:"primary_color" bson:"primary_color"`
	Logo             string    `json:"logo" bson:"logo"`
	DefaultLanguage  string    `json:"default_language" bson:"default_language"`
	EnabledLanguages []string  `json:"enabled_languages" bson:"enabled_languages"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}
