package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// AccountHandler serves user account endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Verify returns the authenticated user. The path id is ignored; the token
// decides who is verified.
func (h *AccountHandler) Verify(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	return JSON(c, http.StatusOK, "User verified successfully.", user)
}

// List handles GET /users.
func (h *AccountHandler) List(c echo.Context) error {
	users, err := h.accounts.List(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Users fetched successfully.", users)
}

// Get handles GET /users/:id.
func (h *AccountHandler) Get(c echo.Context) error {
	user, err := h.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "User fetched successfully.", user)
}

// Delete handles DELETE /users/:id and answers with an empty 204.
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := h.accounts.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
