package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/menuglobal/menu-admin/internal/api/middleware"
	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (string, *domain.Identity, error)
	createFn         func(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error)
	changePasswordFn func(ctx context.Context, id, current, next string) error
	deactivateFn     func(ctx context.Context, id string) error
	meFn             func(ctx context.Context, id string) (*domain.Identity, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CreateIdentity(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	return s.createFn(ctx, in)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, id, current, next string) error {
	return s.changePasswordFn(ctx, id, current, next)
}

func (s *stubAuthService) Deactivate(ctx context.Context, id string) error {
	return s.deactivateFn(ctx, id)
}

func (s *stubAuthService) Me(ctx context.Context, id string) (*domain.Identity, error) {
	return s.meFn(ctx, id)
}

type stubSessions struct {
	attached string
	cleared  bool
}

func (s *stubSessions) Attach(_ echo.Context, token string) { s.attached = token }
func (s *stubSessions) Clear(echo.Context)                  { s.cleared = true }

type fixedResolver struct{ claims *domain.SessionClaims }

func (r fixedResolver) Resolve(echo.Context) (*domain.SessionClaims, bool) {
	return r.claims, r.claims != nil
}

// newContext builds a request context with a validator registered, as the router does.
func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// asCaller runs h as if the Auth middleware had resolved claims.
func asCaller(claims *domain.SessionClaims, h echo.HandlerFunc) echo.HandlerFunc {
	return middleware.Auth(fixedResolver{claims: claims})(h)
}

var (
	ownerClaims   = &domain.SessionClaims{IdentityID: "owner-1", Email: "owner@example.com", Role: domain.RoleOwner}
	managerClaims = &domain.SessionClaims{IdentityID: "mgr-1", Email: "mgr@example.com", Role: domain.RoleManager, RestaurantID: "rest-1"}
)
