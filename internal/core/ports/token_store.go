package ports

import "context"

// TokenStore owns the token→user mapping for opaque bearer tokens.
// A user has at most one token at any time.
type TokenStore interface {
	// IssueOrGet returns the user's existing token, or generates and persists
	// a new one. Check-then-set is atomic: two concurrent first logins for the
	// same user converge to a single token.
	IssueOrGet(ctx context.Context, userID string) (string, error)
	// Resolve maps a token to its user ID. Unknown or malformed tokens fail
	// with domain.ErrTokenNotFound.
	Resolve(ctx context.Context, token string) (string, error)
	// Revoke deletes the user's token mapping. Fails with
	// domain.ErrTokenNotFound when the user holds no token.
	Revoke(ctx context.Context, userID string) error
}
