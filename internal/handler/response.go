package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

const (
	statusSuccess = "success"
	statusFail    = "fail"
	statusError   = "error"
)

// Envelope is the standard API response wrapper.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorEnvelope is the response body of a failed request. Status is "fail"
// for client errors and "error" for server errors.
type ErrorEnvelope struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a field-level validation error.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// JSON writes a success envelope.
func JSON(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Envelope{Status: statusSuccess, Message: message, Data: data})
}

// HTTPErrorHandler is the global error handler for echo.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	if jsonErr := c.JSON(status, body); jsonErr != nil {
		slog.Error("failed to send error response", "error", jsonErr)
	}
}

func mapError(err error) (int, ErrorEnvelope) {
	// Handle echo's own HTTP errors (404, 405, 429, etc.)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, envelopeFor(echoErr.Code, msg)
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, ErrorEnvelope{
			Status:  statusFail,
			Message: "Validation failed",
			Details: []FieldError{
				{Field: validationErr.Field, Message: validationErr.Message},
			},
		}
	}

	var status int
	var msg string
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status, msg = http.StatusNotFound, "The requested resource was not found"
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Authentication is required"
	case errors.Is(err, domain.ErrForbidden):
		status, msg = http.StatusForbidden, "You do not have permission to perform this action"
	case errors.Is(err, domain.ErrInvalidInput):
		status, msg = http.StatusBadRequest, "The request body is invalid"
	case errors.Is(err, domain.ErrConflict):
		status, msg = http.StatusConflict, "The resource already exists or conflicts with current state"
	default:
		slog.Error("unhandled error", "error", err)
		return http.StatusInternalServerError, envelopeFor(http.StatusInternalServerError, "An unexpected error occurred")
	}

	var appErr *domain.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	return status, envelopeFor(status, msg)
}

func envelopeFor(status int, msg string) ErrorEnvelope {
	s := statusFail
	if status >= http.StatusInternalServerError {
		s = statusError
	}
	return ErrorEnvelope{Status: s, Message: msg}
}
