package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

// UserHandler exposes the owner-only account administration.
type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Create adds a staff account.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	identity, err := h.authService.CreateIdentity(c.Request().Context(), ports.CreateIdentityInput{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         req.Role,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toIdentityResponse(identity))
}

// Deactivate disables a staff account. Accounts are never deleted.
//
// @Summary      Deactivate user
// @Tags         users
// @Produce      json
// @Security     CookieAuth
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  messageResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/users/{userID}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	userID := c.Param("userID")
	if userID == claims.IdentityID {
		return domain.NewValidationError("you cannot deactivate your own account")
	}

	if err := h.authService.Deactivate(c.Request().Context(), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deactivated"})
}
