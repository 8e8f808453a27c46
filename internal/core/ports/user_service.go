package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateProfileInput is a partial profile update; nil fields are left
// untouched. Email is the account identity and cannot be changed here.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Password  *string
}

// UserPage is one page of the admin user listing.
type UserPage struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserService defines account management use cases.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	// DeleteAccount revokes the user's token and removes the account.
	DeleteAccount(ctx context.Context, userID string) error
	// CreateSuperuser registers an account with staff and superuser flags set.
	CreateSuperuser(ctx context.Context, email, password string) (*domain.User, error)
	ListUsers(ctx context.Context, page, limit int) (*UserPage, error)
}
