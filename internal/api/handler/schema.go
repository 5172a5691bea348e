package handler

import (
	"time"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

type identityResponse struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	Active       bool   `json:"active"`
}

type loginResponse struct {
	User identityResponse `json:"user"`
}

func toIdentityResponse(i *domain.Identity) identityResponse {
	return identityResponse{
		ID:           i.ID,
		Email:        i.Email,
		Name:         i.Name,
		Role:         i.Role,
		RestaurantID: i.RestaurantID,
		Active:       i.Active,
	}
}

// --- Users ---

type createUserRequest struct {
	Email        string `json:"email"         validate:"required,email"`
	Name         string `json:"name"          validate:"required"`
	Password     string `json:"password"      validate:"required,min=8,max=72"`
	Role         string `json:"role"          validate:"required,oneof=owner manager"`
	RestaurantID string `json:"restaurant_id" validate:"required_if=Role manager,excluded_if=Role owner"`
}

// --- Restaurants ---

type createRestaurantRequest struct {
	Name             string   `json:"name"              validate:"required"`
	PrimaryColor     string   `json:"primary_color"     validate:"omitempty,hexcolor"`
	Logo             string   `json:"logo"              validate:"omitempty,url"`
	DefaultLanguage  string   `json:"default_language"  validate:"omitempty,bcp47_language_tag"`
	EnabledLanguages []string `json:"enabled_languages" validate:"omitempty,dive,bcp47_language_tag"`
}

type restaurantResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	PrimaryColor     string    `json:"primary_color"`
	Logo             string    `json:"logo,omitempty"`
	DefaultLanguage  string    `json:"default_language"`
	EnabledLanguages []string  `json:"enabled_languages"`
	CreatedAt        time.Time `json:"created_at"`
}

func toRestaurantResponse(r *domain.Restaurant) restaurantResponse {
	return restaurantResponse{
		ID:               r.ID,
		Name:             r.Name,
		Slug:             r.Slug,
		PrimaryColor:     r.PrimaryColor,
		Logo:             r.Logo,
		DefaultLanguage:  r.DefaultLanguage,
		EnabledLanguages: r.EnabledLanguages,
		CreatedAt:        r.CreatedAt,
	}
}

// --- Menu ---

type createCategoryRequest struct {
	Name  map[string]string `json:"name"  validate:"required,min=1"`
	Order int               `json:"order" validate:"gte=0"`
	Icon  string            `json:"icon"`
}

type createItemRequest struct {
	CategoryID       string            `json:"category_id"       validate:"required"`
	Name             map[string]string `json:"name"              validate:"required,min=1"`
	Description      map[string]string `json:"description"`
	Price            float64           `json:"price"             validate:"gte=0"`
	Image            string            `json:"image"             validate:"omitempty,url"`
	Tags             []string          `json:"tags"`
	Allergens        []string          `json:"allergens"`
	Order            int               `json:"order"             validate:"gte=0"`
	OriginalLanguage string            `json:"original_language"`
}

type availabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type publicMenuResponse struct {
	Restaurant restaurantResponse `json:"restaurant"`
	Categories []*domain.Category `json:"categories"`
	Items      []*domain.MenuItem `json:"items"`
}

// --- Uploads ---

type uploadResponse struct {
	URL string `json:"url"`
}
