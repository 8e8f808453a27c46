package ports

import (
	"context"

	"github.com/userhub/account-service/internal/core/domain"
)

// AuthService covers the two authentication flows: exchanging credentials for
// an opaque token, and resolving a presented token back to a user identity.
type AuthService interface {
	// Login validates email/password and returns the user's token. Unknown
	// email and wrong password both fail with domain.ErrInvalidCredentials
	// and are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, error)
	// Authenticate resolves a bearer token to the owning user. Missing,
	// unknown, or orphaned tokens fail with domain.ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
