package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations
// translate storage-level failures (constraint violations, missing rows)
// into domain errors; raw driver errors never cross this boundary.
type UserRepository interface {
	// Create persists a new user. A normalized-email collision fails with
	// domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update overwrites the stored record for user.ID. Fails with
	// domain.ErrUserNotFound when no such user exists.
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// List returns a page of users ordered by creation time plus the total count.
	List(ctx context.Context, page, limit int) ([]*domain.User, int64, error)
}
