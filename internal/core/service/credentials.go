package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/menuglobal/menu-admin/internal/core/domain"
)

const (
	// DefaultBcryptCost bounds login latency while keeping offline brute force expensive.
	DefaultBcryptCost = 12
	// SessionTTL is the lifetime of an issued session token.
	SessionTTL = 7 * 24 * time.Hour
)

// ErrMissingSigningSecret is returned by NewCredentials when no secret is configured.
var ErrMissingSigningSecret = errors.New("session signing secret is not configured")

// Credentials hashes passwords and mints/verifies signed session tokens.
// It holds no mutable state besides the lazily computed dummy hash and is
// safe for concurrent use.
type Credentials struct {
	secret []byte
	cost   int
	ttl    time.Duration
	now    func() time.Time

	dummyOnce sync.Once
	dummy     string
}

// CredentialsOption customises a Credentials instance.
type CredentialsOption func(*Credentials)

// WithBcryptCost overrides the bcrypt work factor. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) CredentialsOption {
	return func(c *Credentials) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			c.cost = cost
		}
	}
}

// WithClock replaces the time source used for issuing and checking expiry.
func WithClock(now func() time.Time) CredentialsOption {
	return func(c *Credentials) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCredentials builds the credential primitives around the process-wide
// signing secret. An empty secret is a startup error.
func NewCredentials(secret string, opts ...CredentialsOption) (*Credentials, error) {
	if secret == "" {
		return nil, ErrMissingSigningSecret
	}
	c := &Credentials{
		secret: []byte(secret),
		cost:   DefaultBcryptCost,
		ttl:    SessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// HashPassword returns a salted bcrypt digest of plaintext.
func (c *Credentials) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches digest.
func (c *Credentials) VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// burnComparison spends roughly the same time as a real password check so
// that unknown accounts cannot be told apart by latency.
func (c *Credentials) burnComparison(plaintext string) {
	c.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("menu-admin-dummy-password"), c.cost)
		if err == nil {
			c.dummy = string(hash)
		}
	})
	if c.dummy != "" {
		_ = bcrypt.CompareHashAndPassword([]byte(c.dummy), []byte(plaintext))
	}
}

type sessionTokenClaims struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken signs claims into an HS256 token that expires SessionTTL from now.
func (c *Credentials) IssueToken(claims domain.SessionClaims) (string, error) {
	if claims.IdentityID == "" || !domain.ValidRole(claims.Role) {
		return "", fmt.Errorf("issue token: incomplete claims for %q", claims.IdentityID)
	}

	now := c.now()
	tc := sessionTokenClaims{
		Email:        claims.Email,
		Role:         claims.Role,
		RestaurantID: claims.RestaurantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.IdentityID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks signature and expiry and returns the embedded claims.
// Every failure, whatever its cause, yields domain.ErrInvalidToken.
func (c *Credentials) VerifyToken(token string) (*domain.SessionClaims, error) {
	var tc sessionTokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if tc.Subject == "" || !domain.ValidRole(tc.Role) || tc.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	return &domain.SessionClaims{
		IdentityID:   tc.Subject,
		Email:        tc.Email,
		Role:         tc.Role,
		RestaurantID: tc.RestaurantID,
		ExpiresAt:    tc.ExpiresAt.Time,
	}, nil
}
