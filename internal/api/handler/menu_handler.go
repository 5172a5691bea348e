package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/ports"
)

// MenuHandler manages the categories and items of one restaurant. Routes are
// mounted under /api/restaurants/:restaurantID behind the tenant scope check.
type MenuHandler struct {
	service ports.MenuService
}

func NewMenuHandler(service ports.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// ListCategories
//
// @Summary      List categories
// @Tags         menu
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantID  path      string  true  "Restaurant ID"
// @Success      200           {array}   domain.Category
// @Failure      401           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/categories [get]
func (h *MenuHandler) ListCategories(c echo.Context) error {
	list, err := h.service.ListCategories(c.Request().Context(), c.Param("restaurantID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// CreateCategory
//
// @Summary      Create category
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantID  path      string                 true  "Restaurant ID"
// @Param        body          body      createCategoryRequest  true  "Category"
// @Success      201           {object}  domain.Category
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/categories [post]
func (h *MenuHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	category, err := h.service.CreateCategory(c.Request().Context(), ports.CreateCategoryInput{
		RestaurantID: c.Param("restaurantID"),
		Name:         req.Name,
		Order:        req.Order,
		Icon:         req.Icon,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// DeleteCategory removes an empty category.
//
// @Summary      Delete category
// @Tags         menu
// @Security     CookieAuth
// @Param        restaurantID  path  string  true  "Restaurant ID"
// @Param        categoryID    path  string  true  "Category ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/categories/{categoryID} [delete]
func (h *MenuHandler) DeleteCategory(c echo.Context) error {
	if err := h.service.DeleteCategory(c.Request().Context(), c.Param("restaurantID"), c.Param("categoryID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListItems lists the restaurant's items, optionally for one category.
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantID  path      string  true   "Restaurant ID"
// @Param        category_id   query     string  false  "Only items of this category"
// @Success      200           {array}   domain.MenuItem
// @Failure      401           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/items [get]
func (h *MenuHandler) ListItems(c echo.Context) error {
	list, err := h.service.ListItems(c.Request().Context(), c.Param("restaurantID"), c.QueryParam("category_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// CreateItem
//
// @Summary      Create menu item
// @Tags         menu
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        restaurantID  path      string             true  "Restaurant ID"
// @Param        body          body      createItemRequest  true  "Menu item"
// @Success      201           {object}  domain.MenuItem
// @Failure      400           {object}  errorResponse
// @Failure      401           {object}  errorResponse
// @Failure      404           {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/items [post]
func (h *MenuHandler) CreateItem(c echo.Context) error {
	var req createItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.service.CreateItem(c.Request().Context(), ports.CreateMenuItemInput{
		RestaurantID:     c.Param("restaurantID"),
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Description:      req.Description,
		Price:            req.Price,
		Image:            req.Image,
		Tags:             req.Tags,
		Allergens:        req.Allergens,
		Order:            req.Order,
		OriginalLanguage: req.OriginalLanguage,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

// SetAvailability marks an item as available or sold out.
//
// @Summary      Set item availability
// @Tags         menu
// @Accept       json
// @Security     CookieAuth
// @Param        restaurantID  path  string               true  "Restaurant ID"
// @Param        itemID        path  string               true  "Item ID"
// @Param        body          body  availabilityRequest  true  "Availability"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/items/{itemID}/availability [patch]
func (h *MenuHandler) SetAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Available == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "available is required")
	}

	err := h.service.SetAvailability(c.Request().Context(), c.Param("restaurantID"), c.Param("itemID"), *req.Available)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteItem
//
// @Summary      Delete menu item
// @Tags         menu
// @Security     CookieAuth
// @Param        restaurantID  path  string  true  "Restaurant ID"
// @Param        itemID        path  string  true  "Item ID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/restaurants/{restaurantID}/items/{itemID} [delete]
func (h *MenuHandler) DeleteItem(c echo.Context) error {
	if err := h.service.DeleteItem(c.Request().Context(), c.Param("restaurantID"), c.Param("itemID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
