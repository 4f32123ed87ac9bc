package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
	"github.com/Raafiya76/doctor-appointment-booking/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type signupRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,max=30"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type sessionResponse struct {
	User   *domain.User       `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Signup(c.Request().Context(), service.SignupInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, "User created successfully", user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, tokens, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, "Logged in successfully", sessionResponse{User: user, Tokens: tokens})
}

// Refresh generates a new token pair from a refresh token.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tokens, err := h.auth.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		return domain.Errorf(domain.ErrUnauthorized, "Invalid or expired refresh token")
	}
	return JSON(c, http.StatusOK, "Token refreshed", tokens)
}
