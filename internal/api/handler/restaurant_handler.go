package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/ports"
)

const idempotencyHeader = "Idempotency-Key"

// RestaurantHandler handles tenant administration and the public menu.
type RestaurantHandler struct {
	service ports.RestaurantService
}

func NewRestaurantHandler(service ports.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{service: service}
}

// List returns every restaurant, newest first.
//
// @Summary      List restaurants
// @Tags         restaurants
// @Produce      json
// @Security     CookieAuth
// @Success      200  {array}   restaurantResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/restaurants [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]restaurantResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, toRestaurantResponse(r))
	}
	return c.JSON(http.StatusOK, resp)
}

// Create registers a restaurant and assigns its public slug.
//
// @Summary      Create restaurant
// @Tags         restaurants
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        Idempotency-Key  header    string                   false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createRestaurantRequest  true   "Restaurant details"
// @Success      201              {object}  restaurantResponse
// @Success      200              {object}  restaurantResponse  "Replay of an earlier request with the same key"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Router       /api/restaurants [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateRestaurantInput{
		Name:             req.Name,
		PrimaryColor:     req.PrimaryColor,
		Logo:             req.Logo,
		DefaultLanguage:  req.DefaultLanguage,
		EnabledLanguages: req.EnabledLanguages,
		IdempotencyKey:   c.Request().Header.Get(idempotencyHeader),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toRestaurantResponse(result.Restaurant))
}

// Get returns one restaurant.
//
// @Summary      Get restaurant
// @Tags         restaurants
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantID  path      string  true  "Restaurant ID"
// @Success      200           {object}  restaurantResponse
// @Failure      401           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/restaurants/{restaurantID} [get]
func (h *RestaurantHandler) Get(c echo.Context) error {
	r, err := h.service.Get(c.Request().Context(), c.Param("restaurantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRestaurantResponse(r))
}

// PublicMenu serves the diner-facing menu of a restaurant.
//
// @Summary      Public menu
// @Tags         public
// @Produce      json
// @Param        slug  path      string  true  "Restaurant slug"
// @Success      200   {object}  publicMenuResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/public/restaurants/{slug}/menu [get]
func (h *RestaurantHandler) PublicMenu(c echo.Context) error {
	menu, err := h.service.PublicMenu(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicMenuResponse{
		Restaurant: toRestaurantResponse(menu.Restaurant),
		Categories: menu.Categories,
		Items:      menu.Items,
	})
}
