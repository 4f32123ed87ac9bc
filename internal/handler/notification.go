package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// NotificationHandler serves the caller's notification inbox.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// MarkAllSeen handles POST /users/mark-all-notification-seen.
func (h *NotificationHandler) MarkAllSeen(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	updated, err := h.notifications.MarkAllSeen(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "All notifications seen", updated)
}

// ClearAll handles POST /users/delete-all-notifications.
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return domain.ErrUnauthorized
	}
	updated, err := h.notifications.ClearAll(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "All notifications deleted", updated)
}
