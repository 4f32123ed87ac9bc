package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Raafiya76/doctor-appointment-booking/internal/authz"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// Services bundles the services the HTTP layer depends on.
type Services struct {
	Auth          *service.AuthService
	Accounts      *service.AccountService
	Appointments  *service.AppointmentService
	Doctors       *service.DoctorService
	Notifications *service.NotificationService
}

// RouterConfig holds transport settings.
type RouterConfig struct {
	FrontendURL   string
	AuthRateLimit float64
	AuthRateBurst int
}

// NewRouter builds the echo instance with every route registered. ctx bounds
// background work such as rate limiter cleanup.
func NewRouter(ctx context.Context, svc Services, gate *authz.Gate, cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = NewAppValidator()

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return JSON(c, http.StatusOK, "ok", nil)
	})

	authH := NewAuthHandler(svc.Auth)
	accountH := NewAccountHandler(svc.Accounts)
	apptH := NewAppointmentHandler(svc.Appointments, gate)
	doctorH := NewDoctorHandler(svc.Doctors)
	notifH := NewNotificationHandler(svc.Notifications)

	api := e.Group("/api/v1")

	limiter := NewRateLimiter(ctx, cfg.AuthRateLimit, cfg.AuthRateBurst)
	auth := api.Group("/auth", RateLimit(limiter))
	auth.POST("/signup", authH.Signup)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	requireAuth := JWTAuth(svc.Auth)

	users := api.Group("/users", requireAuth)
	users.GET("/verify-user/:id", accountH.Verify)
	users.GET("", accountH.List, Authorize(gate, authz.ResourceUser, authz.ActionList, nil))
	users.POST("/book-appointment", apptH.Book)
	users.GET("/user-appointments/:id", apptH.ListForUser, Authorize(gate, authz.ResourceAppointment, authz.ActionList, Param("id")))
	users.GET("/all-appointments", apptH.ListAll, Authorize(gate, authz.ResourceAppointment, authz.ActionList, nil))
	users.PUT("/update-appointment/:id", apptH.UpdateStatus, Authorize(gate, authz.ResourceAppointment, authz.ActionUpdateStatus, nil))
	users.POST("/mark-all-notification-seen", notifH.MarkAllSeen)
	users.POST("/delete-all-notifications", notifH.ClearAll)
	users.GET("/:id", accountH.Get, Authorize(gate, authz.ResourceUser, authz.ActionView, Param("id")))
	users.DELETE("/:id", accountH.Delete, Authorize(gate, authz.ResourceUser, authz.ActionDelete, nil))

	doctors := api.Group("/doctors", requireAuth)
	doctors.GET("", doctorH.List, Authorize(gate, authz.ResourceDoctor, authz.ActionList, nil))
	doctors.POST("/apply-doctor", doctorH.Apply, Authorize(gate, authz.ResourceDoctor, authz.ActionApply, nil))
	doctors.POST("/change-doctor-status", doctorH.ChangeStatus, Authorize(gate, authz.ResourceDoctor, authz.ActionChangeStatus, nil))
	doctors.GET("/approved", doctorH.ListApproved)
	doctors.GET("/appointments", apptH.ListForDoctor)
	doctors.PUT("/profile", doctorH.UpdateProfile)
	doctors.GET("/user/:userId", doctorH.GetByUser, Authorize(gate, authz.ResourceDoctor, authz.ActionView, Param("userId")))
	doctors.GET("/:id", doctorH.Get, Authorize(gate, authz.ResourceDoctor, authz.ActionView, Param("id")))

	return e
}
