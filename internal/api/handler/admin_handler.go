package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userhub/account-service/internal/core/ports"
)

// AdminHandler serves the staff-only account listing.
type AdminHandler struct {
	users ports.UserService
}

func NewAdminHandler(users ports.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns a page of all accounts.
//
// @Summary      List user accounts (staff only)
// @Tags         admin
// @Produce      json
// @Security     TokenAuth
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listUsersResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /admin/users/ [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	var q listUsersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.users.ListUsers(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return err
	}

	items := make([]adminUserView, 0, len(page.Items))
	for _, u := range page.Items {
		items = append(items, toAdminUserView(u))
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}
