package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
	"github.com/menuglobal/menu-admin/internal/metrics"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes; refuse instead of truncating silently.
	maxPasswordBytes = 72
)

// AuthService implements login and account administration.
type AuthService struct {
	repo        ports.IdentityRepository
	restaurants ports.RestaurantRepository
	creds       *Credentials
	log         zerolog.Logger
}

func NewAuthService(repo ports.IdentityRepository, restaurants ports.RestaurantRepository, creds *Credentials, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, restaurants: restaurants, creds: creds, log: log}
}

// Login checks the credentials and returns a freshly minted session token.
// Unknown email, wrong password and deactivated accounts all fail with
// domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	identity, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.creds.burnComparison(password)
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, fmt.Errorf("login: %w", err)
	}

	if !s.creds.VerifyPassword(password, identity.PasswordHash) || !identity.Active {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(domain.ClaimsFor(identity))
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("identity_id", identity.ID).Str("role", identity.Role).Msg("login succeeded")
	return token, identity, nil
}

// CreateIdentity registers a staff account. A lost email uniqueness race
// surfaces as domain.ErrEmailTaken and is not retried.
func (s *AuthService) CreateIdentity(ctx context.Context, in ports.CreateIdentityInput) (*domain.Identity, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		ID:           uuid.NewString(),
		Email:        domain.NormalizeEmail(in.Email),
		Name:         strings.TrimSpace(in.Name),
		Role:         strings.ToLower(strings.TrimSpace(in.Role)),
		RestaurantID: strings.TrimSpace(in.RestaurantID),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	if identity.Role == domain.RoleManager {
		if _, err := s.restaurants.FindByID(ctx, identity.RestaurantID); err != nil {
			if errors.Is(err, domain.ErrRestaurantNotFound) {
				return nil, domain.NewValidationError("restaurant does not exist")
			}
			return nil, fmt.Errorf("create identity: %w", err)
		}
	}

	hash, err := s.creds.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	identity.PasswordHash = hash

	if err := s.repo.Create(ctx, identity); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create identity: %w", err)
	}

	s.log.Info().Str("identity_id", identity.ID).Str("role", identity.Role).Msg("identity created")
	return identity, nil
}

// ChangePassword re-hashes the password of identityID after checking the current one.
// Tokens issued before the change stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, identityID, current, next string) error {
	if err := validatePassword(next); err != nil {
		return err
	}

	identity, err := s.repo.FindByID(ctx, identityID)
	if err != nil {
		return err
	}
	if !s.creds.VerifyPassword(current, identity.PasswordHash) {
		return domain.NewValidationError("current password is incorrect")
	}

	hash, err := s.creds.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, identityID, hash); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("identity_id", identityID).Msg("password changed")
	return nil
}

// Deactivate disables an account. Identities are never deleted.
func (s *AuthService) Deactivate(ctx context.Context, identityID string) error {
	if err := s.repo.SetActive(ctx, identityID, false); err != nil {
		return err
	}
	s.log.Info().Str("identity_id", identityID).Msg("identity deactivated")
	return nil
}

func (s *AuthService) Me(ctx context.Context, identityID string) (*domain.Identity, error) {
	return s.repo.FindByID(ctx, identityID)
}

func validatePassword(p string) error {
	switch {
	case len(p) < minPasswordLength:
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	case len(p) > maxPasswordBytes:
		return domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}
