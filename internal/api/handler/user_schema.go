package handler

import (
	"time"

	"github.com/userhub/account-service/internal/core/domain"
)

// errorResponse is the generic error envelope for non-field errors.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createUserRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=5"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Password  *string `json:"password" validate:"omitempty,min=5"`
}

type listUsersQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// --- Response types ---
// Each response shape is an explicit typed projection of the domain user,
// enumerated per endpoint. The password hash has no JSON representation
// anywhere in this package.

type tokenResponse struct {
	Token string `json:"token"`
}

type profileView struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func toProfileView(u *domain.User) profileView {
	return profileView{
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type adminUserView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	CreatedAt   string `json:"created_at"`
}

func toAdminUserView(u *domain.User) adminUserView {
	return adminUserView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

type listUsersResponse struct {
	Items      []adminUserView `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
