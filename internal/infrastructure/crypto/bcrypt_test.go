package crypto

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	digest, err := h.Hash("test_password_123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "test_password_123" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !h.Verify("test_password_123", digest) {
		t.Fatalf("correct password did not verify")
	}
	if h.Verify("wrong_password", digest) {
		t.Fatalf("wrong password verified")
	}
}

func TestBcryptHasher_SaltedOutput(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("same_password")
	if err != nil {
		t.Fatalf("first hash: %v", err)
	}
	b, err := h.Hash("same_password")
	if err != nil {
		t.Fatalf("second hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password must differ (salt)")
	}
	if !h.Verify("same_password", a) || !h.Verify("same_password", b) {
		t.Fatalf("both digests should verify against the original password")
	}
}

func TestBcryptHasher_MalformedDigest(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$junk"} {
		if h.Verify("anything", digest) {
			t.Fatalf("malformed digest %q verified", digest)
		}
	}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	h := NewBcryptHasher(-1)
	if h.cost != bcrypt.DefaultCost {
		t.Fatalf("expected fallback to default cost, got %d", h.cost)
	}
}
