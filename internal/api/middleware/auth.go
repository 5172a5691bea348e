package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

const claimsKey = "session_claims"

// Resolver identifies the caller of a request.
type Resolver interface {
	Resolve(c echo.Context) (*domain.SessionClaims, bool)
}

// Auth resolves the caller once per request and stores the claims in the
// context. It never rejects; RBAC decides what anonymous callers may reach.
func Auth(resolver Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := resolver.Resolve(c); ok {
				c.Set(claimsKey, claims)
			}
			return next(c)
		}
	}
}

// Claims returns the caller resolved by Auth, or nil for anonymous callers.
func Claims(c echo.Context) *domain.SessionClaims {
	claims, _ := c.Get(claimsKey).(*domain.SessionClaims)
	return claims
}

// unauthorized is the single response for every rejected caller, whether the
// credential is missing, invalid or simply lacks the role.
func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthorized.Error()).SetInternal(domain.ErrUnauthorized)
}
