package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/userhub/account-service/internal/core/domain"
)

// errorResponse is the envelope for non-field errors.
type errorResponse struct {
	Error string `json:"error"`
}

// fieldErrors renders field-scoped validation and constraint failures, e.g.
// {"email": ["user with this email already exists"]}. Credential failures on
// the token endpoint use the "non_field_errors" key since they cannot be
// attributed to a single field without enabling user enumeration.
type fieldErrors map[string][]string

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders FieldErrors from the validator verbatim.
//   - Maps known domain errors to their HTTP status and JSON shape.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors: bind failures, 404 from the router, middleware
	// rejections, and validator output (FieldErrors as the message).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return he.Code, errorResponse{Error: msg}
		}
		return he.Code, he.Message
	}

	// Known domain errors → deterministic status codes and shapes.
	switch {
	case errors.Is(err, domain.ErrEmptyEmail):
		return http.StatusBadRequest, fieldErrors{"email": {domain.ErrEmptyEmail.Error()}}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, fieldErrors{"email": {domain.ErrDuplicateEmail.Error()}}
	case errors.Is(err, domain.ErrPasswordTooShort):
		return http.StatusBadRequest, fieldErrors{"password": {fmt.Sprintf("must be at least %d characters", domain.MinPasswordLength)}}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, fieldErrors{"non_field_errors": {domain.ErrInvalidCredentials.Error()}}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthenticated.Error()}
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Error: domain.ErrUserNotFound.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
