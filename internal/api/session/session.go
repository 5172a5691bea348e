// Package session carries the signed session token between the API and the
// browser in an HTTP-only cookie.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

const (
	CookieName = "auth_token"
	cookiePath = "/"
	maxAge     = 7 * 24 * time.Hour
)

// Manager resolves callers from the session cookie and writes or clears it.
type Manager struct {
	verifier ports.TokenVerifier
	secure   bool
}

// NewManager returns a Manager. secure marks cookies Secure and should be
// set in production.
func NewManager(verifier ports.TokenVerifier, secure bool) *Manager {
	return &Manager{verifier: verifier, secure: secure}
}

// Resolve returns the caller's claims. A missing, malformed, tampered or
// expired cookie all resolve to an anonymous caller.
func (m *Manager) Resolve(c echo.Context) (*domain.SessionClaims, bool) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	claims, err := m.verifier.VerifyToken(cookie.Value)
	if err != nil {
		return nil, false
	}
	return claims, true
}

// Attach sets the session cookie to token.
func (m *Manager) Attach(c echo.Context, token string) {
	c.SetCookie(m.cookie(token, int(maxAge.Seconds())))
}

// Clear expires the session cookie on the client.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     cookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
