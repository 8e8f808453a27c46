package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

// AuthService implements credential verification, token issuance, and the
// authorization gate for protected requests.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenStore
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenStore, hasher ports.PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, log: log}
}

// Login runs the authentication pipeline: lookup by normalized email, verify
// the password against the stored hash, then issue-or-get the user's token.
// Unknown email and wrong password are collapsed into ErrInvalidCredentials
// so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	start := time.Now()
	defer func() { metrics.LoginDuration.Observe(time.Since(start).Seconds()) }()

	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", domain.ErrInvalidCredentials
		}
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueOrGet(ctx, user.ID)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return "", err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

// Authenticate resolves a bearer token to the owning user. The gate performs
// no mutation: it is a pure lookup of token → user ID → user. A token whose
// user no longer exists is treated the same as an unknown token.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}
