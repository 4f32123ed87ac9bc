package handler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/authz"
	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

const (
	contextKeyUser = "user"
)

// RequestLogger logs each HTTP request with structured fields.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// run the error handler now so the logged status is the real one
				c.Error(err)
			}

			attrs := []any{
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if u, ok := CurrentUser(c); ok {
				attrs = append(attrs, "user_id", u.ID)
			}
			slog.Info("http request", attrs...)

			return nil
		}
	}
}

// JWTAuth validates the Bearer token, loads the user and stores it in the
// echo context.
func JWTAuth(auth *service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return domain.Errorf(domain.ErrUnauthorized, "You are not logged in")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return domain.Errorf(domain.ErrUnauthorized, "Invalid authorization header")
			}

			userID, err := auth.ValidateToken(parts[1])
			if err != nil {
				return domain.Errorf(domain.ErrUnauthorized, "Invalid or expired token")
			}

			user, err := auth.GetUser(c.Request().Context(), userID)
			if err != nil {
				return domain.Errorf(domain.ErrUnauthorized, "The user belonging to this token no longer exists")
			}

			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user from echo context.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(contextKeyUser).(*domain.User)
	return u, ok && u != nil
}

// ResourceFunc extracts the resource an action applies to from the request.
type ResourceFunc func(c echo.Context) any

// Param uses a path parameter as the resource.
func Param(name string) ResourceFunc {
	return func(c echo.Context) any { return c.Param(name) }
}

// Authorize checks the current user against the gate before running the
// handler. resource may be nil for collection actions.
func Authorize(gate *authz.Gate, resourceType string, action authz.Action, resource ResourceFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := CurrentUser(c)
			var target any
			if resource != nil {
				target = resource(c)
			}
			if err := gate.Authorize(c.Request().Context(), authz.SubjectOf(user), action, resourceType, target); err != nil {
				return err
			}
			return next(c)
		}
	}
}
