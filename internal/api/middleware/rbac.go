package middleware

import (
	"github.com/labstack/echo/v4"
)

// RBAC lets through callers whose role is one of allowedRoles.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return unauthorized()
			}
			if _, ok := allowed[claims.Role]; !ok {
				return unauthorized()
			}
			return next(c)
		}
	}
}

// RestaurantScope rejects callers that may not manage the restaurant named by
// the given path parameter. Owners pass; managers only for their own restaurant.
func RestaurantScope(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !Claims(c).CanAccessRestaurant(c.Param(param)) {
				return unauthorized()
			}
			return next(c)
		}
	}
}
