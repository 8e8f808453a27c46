package ports

// PasswordHasher owns the one-way credential transform. Hash output is salted,
// so hashing the same plaintext twice yields different digests; Verify is the
// only way to check a password.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed digest
	// verifies false, never panics or errors.
	Verify(plaintext, digest string) bool
}
