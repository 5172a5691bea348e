package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

type authFixture struct {
	svc         *AuthService
	repo        *stubIdentityRepo
	restaurants *stubRestaurantRepo
	creds       *Credentials
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	creds := newTestCredentials(t, nil)
	repo := newStubIdentityRepo()
	restaurants := newStubRestaurantRepo()
	restaurants.byID["rest-1"] = &domain.Restaurant{ID: "rest-1", Name: "Café Lisboa", Slug: "cafe-lisboa"}
	return &authFixture{
		svc:         NewAuthService(repo, restaurants, creds, discardLogger),
		repo:        repo,
		restaurants: restaurants,
		creds:       creds,
	}
}

func ownerInput() ports.CreateIdentityInput {
	return ports.CreateIdentityInput{
		Email:    "Owner@Example.com",
		Name:     "Olga Owner",
		Password: "owner-pass-1",
		Role:     domain.RoleOwner,
	}
}

func TestAuthService_CreateIdentity_Success(t *testing.T) {
	f := newAuthFixture(t)

	identity, err := f.svc.CreateIdentity(context.Background(), ownerInput())
	if err != nil {
		t.Fatalf("CreateIdentity returned error: %v", err)
	}
	if identity.ID == "" {
		t.Fatalf("expected an identifier")
	}
	if identity.Email != "owner@example.com" {
		t.Fatalf("expected lower-cased email, got %s", identity.Email)
	}
	if !identity.Active {
		t.Fatalf("new identities must be active")
	}
	if identity.PasswordHash == "owner-pass-1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte("owner-pass-1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_CreateIdentity_Manager(t *testing.T) {
	f := newAuthFixture(t)

	in := ports.CreateIdentityInput{Email: "m@example.com", Name: "Mia", Password: "manager-pass", Role: domain.RoleManager, RestaurantID: "rest-1"}
	identity, err := f.svc.CreateIdentity(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateIdentity returned error: %v", err)
	}
	if identity.RestaurantID != "rest-1" {
		t.Fatalf("manager must keep its restaurant, got %q", identity.RestaurantID)
	}

	in.Email = "m2@example.com"
	in.RestaurantID = "missing"
	var ve *domain.ValidationError
	if _, err := f.svc.CreateIdentity(context.Background(), in); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for unknown restaurant, got %v", err)
	}
}

func TestAuthService_CreateIdentity_Validation(t *testing.T) {
	f := newAuthFixture(t)

	cases := map[string]ports.CreateIdentityInput{
		"short password":        {Email: "a@example.com", Name: "A", Password: "short", Role: domain.RoleOwner},
		"bad email":             {Email: "nope", Name: "A", Password: "long-enough", Role: domain.RoleOwner},
		"missing name":          {Email: "a@example.com", Password: "long-enough", Role: domain.RoleOwner},
		"unknown role":          {Email: "a@example.com", Name: "A", Password: "long-enough", Role: "admin"},
		"manager without rest":  {Email: "a@example.com", Name: "A", Password: "long-enough", Role: domain.RoleManager},
		"owner with restaurant": {Email: "a@example.com", Name: "A", Password: "long-enough", Role: domain.RoleOwner, RestaurantID: "rest-1"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			var ve *domain.ValidationError
			if _, err := f.svc.CreateIdentity(context.Background(), in); !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestAuthService_CreateIdentity_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	if _, err := f.svc.CreateIdentity(context.Background(), ownerInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	dup := ownerInput()
	dup.Email = "OWNER@example.COM"
	if _, err := f.svc.CreateIdentity(context.Background(), dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	created, _ := f.svc.CreateIdentity(context.Background(), ownerInput())

	token, identity, err := f.svc.Login(context.Background(), "  OWNER@example.com ", "owner-pass-1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if identity == nil || identity.ID != created.ID {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	claims, err := f.creds.VerifyToken(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Role != domain.RoleOwner || claims.IdentityID != created.ID || claims.Email != "owner@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	created, _ := f.svc.CreateIdentity(context.Background(), ownerInput())

	inactive := ports.CreateIdentityInput{Email: "gone@example.com", Name: "Gone", Password: "gone-pass-1", Role: domain.RoleOwner}
	gone, _ := f.svc.CreateIdentity(context.Background(), inactive)
	if err := f.svc.Deactivate(context.Background(), gone.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	attempts := map[string][2]string{
		"wrong password": {created.Email, "not-the-password"},
		"unknown email":  {"ghost@example.com", "owner-pass-1"},
		"inactive":       {"gone@example.com", "gone-pass-1"},
		"empty":          {"", ""},
	}
	for name, a := range attempts {
		t.Run(name, func(t *testing.T) {
			token, identity, err := f.svc.Login(context.Background(), a[0], a[1])
			if err != domain.ErrInvalidCredentials {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if token != "" || identity != nil {
				t.Fatalf("failed login must not return a session")
			}
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	f := newAuthFixture(t)
	created, _ := f.svc.CreateIdentity(context.Background(), ownerInput())
	before := f.repo.users[created.ID].PasswordHash

	var ve *domain.ValidationError
	if err := f.svc.ChangePassword(context.Background(), created.ID, "wrong-current", "new-pass-123"); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for wrong current password, got %v", err)
	}
	if err := f.svc.ChangePassword(context.Background(), created.ID, "owner-pass-1", "short"); !errors.As(err, &ve) {
		t.Fatalf("expected validation error for short password, got %v", err)
	}

	if err := f.svc.ChangePassword(context.Background(), created.ID, "owner-pass-1", "new-pass-123"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if f.repo.users[created.ID].PasswordHash == before {
		t.Fatalf("password hash must be recomputed")
	}
	if _, _, err := f.svc.Login(context.Background(), created.Email, "owner-pass-1"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, _, err := f.svc.Login(context.Background(), created.Email, "new-pass-123"); err != nil {
		t.Fatalf("new password must work: %v", err)
	}
}

func TestAuthService_Deactivate_UnknownIdentity(t *testing.T) {
	f := newAuthFixture(t)
	if err := f.svc.Deactivate(context.Background(), "ghost"); !errors.Is(err, domain.ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestAuthService_Me(t *testing.T) {
	f := newAuthFixture(t)
	created, _ := f.svc.CreateIdentity(context.Background(), ownerInput())

	me, err := f.svc.Me(context.Background(), created.ID)
	if err != nil || me.Email != created.Email {
		t.Fatalf("unexpected Me result: %+v, %v", me, err)
	}
}
