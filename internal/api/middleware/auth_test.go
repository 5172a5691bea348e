package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

type stubResolver struct {
	claims *domain.SessionClaims
}

func (s stubResolver) Resolve(echo.Context) (*domain.SessionClaims, bool) {
	return s.claims, s.claims != nil
}

func TestAuthMiddleware_ResolvedCaller(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	want := &domain.SessionClaims{IdentityID: "id-1", Role: domain.RoleOwner}
	called := false
	handler := Auth(stubResolver{claims: want})(func(c echo.Context) error {
		called = true
		if Claims(c) != want {
			t.Fatalf("claims not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_AnonymousPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(stubResolver{})(func(c echo.Context) error {
		called = true
		if Claims(c) != nil {
			t.Fatalf("anonymous caller must not carry claims")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("Auth must not reject by itself")
	}
}
