package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/userhub/account-service/internal/api/metrics"
	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// UserService implements account registration, profile management, account
// removal, and superuser provisioning.
type UserService struct {
	users  ports.UserRepository
	tokens ports.TokenStore
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, tokens ports.TokenStore, hasher ports.PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, hasher: hasher, log: log}
}

// Register creates an account from the given input. The email is normalized
// before the uniqueness check; the password is never stored, only its hash.
func (s *UserService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	user, err := s.create(ctx, in, false)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	case errors.Is(err, domain.ErrDuplicateEmail):
		metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
	case errors.Is(err, domain.ErrEmptyEmail), errors.Is(err, domain.ErrPasswordTooShort):
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
	default:
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
	}
	return user, err
}

// CreateSuperuser registers an account with the staff and superuser flags set.
// Used by the createsuperuser CLI, not exposed over HTTP.
func (s *UserService) CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error) {
	return s.create(ctx, ports.RegisterInput{Email: email, Password: password}, true)
}

func (s *UserService) create(ctx context.Context, in ports.RegisterInput, super bool) (*domain.User, error) {
	email, err := domain.NormalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < domain.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsStaff:      super,
		IsSuperuser:  super,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Bool("superuser", super).Msg("user created")
	return created, nil
}

// UpdateProfile applies a partial update to the user's profile. A password
// field triggers a re-hash; other fields overwrite. Email is immutable.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil {
		if len(*in.Password) < domain.MinPasswordLength {
			return nil, domain.ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

// DeleteAccount revokes the user's token before removing the account so that
// a deleted user's token can never resolve again.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.tokens.Revoke(ctx, userID); err != nil && !errors.Is(err, domain.ErrTokenNotFound) {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}

// ListUsers returns a page of all accounts for the staff-only admin listing.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.users.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.UserPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
