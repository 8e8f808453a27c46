package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyEmail         = errors.New("email must not be empty")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("provided credentials are not correct")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUserNotFound       = errors.New("user not found")
	ErrTokenNotFound      = errors.New("token not found")
)

// MinPasswordLength is the minimum accepted password length, enforced both at
// the HTTP validation layer and in the account service.
const MinPasswordLength = 5

// User models an account holder. Email is the identity: unique after
// normalization and immutable once the account exists.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsStaff      bool      `json:"is_staff"`
	IsSuperuser  bool      `json:"is_superuser"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail canonicalizes an email address for uniqueness comparison:
// the domain part (after the last "@") is lowercased, the local part keeps
// its case. Idempotent. Empty or whitespace-only input fails with
// ErrEmptyEmail; input without an "@" is returned trimmed but otherwise
// untouched (format validation belongs to the transport layer).
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmptyEmail
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email, nil
	}
	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}
