package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/api/middleware"
	"github.com/menuglobal/menu-admin/internal/core/domain"
)

// ctxClaims returns the caller resolved by the Auth middleware. Routes behind
// RBAC always have one; the check keeps handlers safe if mounted without it.
func ctxClaims(c echo.Context) (*domain.SessionClaims, error) {
	claims := middleware.Claims(c)
	if claims == nil || claims.IdentityID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
