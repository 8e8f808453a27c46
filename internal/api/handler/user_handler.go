package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/core/ports"
)

// UserHandler serves the public account endpoints and the authenticated
// current-user endpoints. Domain errors are returned as-is and mapped to
// HTTP responses by the central error handler.
type UserHandler struct {
	users ports.UserService
	auth  ports.AuthService
}

func NewUserHandler(users ports.UserService, auth ports.AuthService) *UserHandler {
	return &UserHandler{users: users, auth: auth}
}

// Create registers a new user account.
//
// @Summary      Register a new user
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  profileView
// @Failure      400   {object}  map[string][]string
// @Router       /user/create/ [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toProfileView(user))
}

// Token exchanges email/password credentials for the user's opaque token.
//
// @Summary      Obtain an auth token
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string][]string
// @Router       /user/token/ [post]
func (h *UserHandler) Token(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the authenticated user's profile.
//
// @Summary      Retrieve the current user
// @Tags         user
// @Produce      json
// @Security     TokenAuth
// @Success      200  {object}  profileView
// @Failure      401  {object}  errorResponse
// @Router       /user/current-user/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileView(user))
}

// UpdateMe applies a partial update to the authenticated user's profile.
// A password field is re-hashed before storage.
//
// @Summary      Update the current user
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     TokenAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  profileView
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  errorResponse
// @Router       /user/current-user/ [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.users.UpdateProfile(c.Request().Context(), user.ID, ports.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileView(updated))
}

// DeleteMe removes the authenticated user's account and revokes its token.
//
// @Summary      Delete the current user
// @Tags         user
// @Security     TokenAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /user/current-user/ [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteAccount(c.Request().Context(), user.ID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
