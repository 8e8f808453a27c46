package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/account-service/internal/core/domain"
	"github.com/userhub/account-service/internal/core/ports"
	"github.com/userhub/account-service/internal/infrastructure/crypto"
)

func newTestUserService(repo *stubUserRepo, tokens *memTokenStore) *UserService {
	return NewUserService(repo, tokens, crypto.NewBcryptHasher(bcrypt.MinCost), zerolog.Nop())
}

func strptr(s string) *string { return &s }

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "test@example.com",
		Password:  "test_password_123",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user ID")
	}
	if user.PasswordHash == "test_password_123" {
		t.Fatalf("password stored in plaintext")
	}
	if user.IsStaff || user.IsSuperuser {
		t.Fatalf("regular registration must not grant staff flags")
	}

	stored, err := repo.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("find after create: %v", err)
	}
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)
	if !hasher.Verify("test_password_123", stored.PasswordHash) {
		t.Fatalf("stored hash does not verify against original password")
	}
}

func TestUserService_Register_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "Test2@EXAMPLE.com",
		Password: "test_password_123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "Test2@example.com" {
		t.Fatalf("expected normalized email Test2@example.com, got %s", user.Email)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())

	in := ports.RegisterInput{Email: "test@example.com", Password: "test_password_123"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// Same address with different domain casing collides after normalization.
	in.Email = "test@EXAMPLE.COM"
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserService_Register_EmptyEmail(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newMemTokenStore())

	for _, email := range []string{"", "   "} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{Email: email, Password: "test_password_123"})
		if !errors.Is(err, domain.ErrEmptyEmail) {
			t.Fatalf("email %q: expected ErrEmptyEmail, got %v", email, err)
		}
	}
}

func TestUserService_Register_ShortPassword(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newMemTokenStore())

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "test@example.com", Password: "pw"})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestUserService_UpdateProfile_FieldsAndPassword(t *testing.T) {
	repo := newStubUserRepo()
	tokens := newMemTokenStore()
	svc := newTestUserService(repo, tokens)
	auth := newTestAuthService(repo, tokens)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "test@example.com",
		Password:  "test_password_123",
		FirstName: "Test",
		LastName:  "User",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{
		FirstName: strptr("TestTest"),
		Password:  strptr("new_password"),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.FirstName != "TestTest" {
		t.Fatalf("first name not updated: %s", updated.FirstName)
	}
	if updated.LastName != "User" {
		t.Fatalf("last name should be untouched: %s", updated.LastName)
	}

	// Credential verification succeeds only with the new password.
	if _, err := auth.Login(context.Background(), "test@example.com", "test_password_123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := auth.Login(context.Background(), "test@example.com", "new_password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestUserService_UpdateProfile_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())
	user := seedUser(t, repo, "test@example.com", "test_password_123")

	_, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Password: strptr("pw")})
	if !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Fatalf("expected ErrPasswordTooShort, got %v", err)
	}
}

func TestUserService_UpdateProfile_NotFound(t *testing.T) {
	svc := newTestUserService(newStubUserRepo(), newMemTokenStore())

	_, err := svc.UpdateProfile(context.Background(), "missing-id", ports.UpdateProfileInput{FirstName: strptr("X")})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteAccount_RevokesToken(t *testing.T) {
	repo := newStubUserRepo()
	tokens := newMemTokenStore()
	svc := newTestUserService(repo, tokens)
	user := seedUser(t, repo, "test@example.com", "test_password_123")

	token, err := tokens.IssueOrGet(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	if err := svc.DeleteAccount(context.Background(), user.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := tokens.Resolve(context.Background(), token); !errors.Is(err, domain.ErrTokenNotFound) {
		t.Fatalf("token should be revoked, got %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user should be deleted, got %v", err)
	}
}

func TestUserService_DeleteAccount_NoToken(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())
	user := seedUser(t, repo, "test@example.com", "test_password_123")

	// A user who never logged in has no token; deletion must still succeed.
	if err := svc.DeleteAccount(context.Background(), user.ID); err != nil {
		t.Fatalf("delete without token failed: %v", err)
	}
}

func TestUserService_CreateSuperuser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())

	user, err := svc.CreateSuperuser(context.Background(), "admin@example.com", "admin_password_123")
	if err != nil {
		t.Fatalf("create superuser failed: %v", err)
	}
	if !user.IsStaff || !user.IsSuperuser {
		t.Fatalf("superuser flags not set: staff=%v super=%v", user.IsStaff, user.IsSuperuser)
	}
}

func TestUserService_ListUsers_ClampsLimit(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo, newMemTokenStore())
	seedUser(t, repo, "a@example.com", "test_password_123")
	seedUser(t, repo, "b@example.com", "test_password_123")

	page, err := svc.ListUsers(context.Background(), 0, 1000)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.Page != 1 {
		t.Fatalf("page not clamped to 1: %d", page.Page)
	}
	if page.Limit != maxPageLimit {
		t.Fatalf("limit not clamped to %d: %d", maxPageLimit, page.Limit)
	}
	if page.Total != 2 {
		t.Fatalf("expected total 2, got %d", page.Total)
	}
	if page.TotalPages != 1 {
		t.Fatalf("expected 1 total page, got %d", page.TotalPages)
	}
}
