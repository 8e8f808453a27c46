package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/core/domain"
)

// contextUserKey must match the key the token middleware stores the
// authenticated user under.
const contextUserKey = "user"

// currentUser extracts the identity injected by the token middleware. Its
// presence proves the middleware ran; a protected handler reached without it
// is a wiring bug, answered with 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(contextUserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
