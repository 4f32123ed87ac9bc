package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Raafiya76/doctor-appointment-booking/internal/domain"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

// AuthService handles account sign-up, login and token handling.
type AuthService struct {
	users      UserStore
	jwtSecret  []byte
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:      users,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcrypt.DefaultCost,
	}
}

// TokenPair holds an access token and refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SignupInput is the data needed to create an account.
type SignupInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
}

// HashPassword returns the bcrypt hash of pw.
func (s *AuthService) HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Signup creates a regular (non-admin, non-doctor) account.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Errorf(domain.ErrConflict, "User already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the user with a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.Errorf(domain.ErrUnauthorized, "Incorrect email or password")
		}
		return nil, nil, fmt.Errorf("find user by email: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.Errorf(domain.ErrUnauthorized, "Incorrect email or password")
	}

	pair, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// ValidateToken validates a JWT access token and returns the user ID.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	return s.parse(tokenString, "access")
}

// RefreshAccessToken validates a refresh token and returns a new token pair.
func (s *AuthService) RefreshAccessToken(refreshToken string) (*TokenPair, error) {
	userID, err := s.parse(refreshToken, "refresh")
	if err != nil {
		return nil, err
	}
	return s.generateTokenPair(userID)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) parse(tokenString, wantType string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse token: %w: %w", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	tokenType, _ := claims["type"].(string)
	if tokenType != wantType {
		return "", domain.ErrUnauthorized
	}

	userID, _ := claims["sub"].(string)
	if userID == "" {
		return "", domain.ErrUnauthorized
	}
	return userID, nil
}

func (s *AuthService) generateTokenPair(userID string) (*TokenPair, error) {
	now := time.Now()

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(accessTokenTTL).Unix(),
	})
	accessStr, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID,
		"type": "refresh",
		"iat":  now.Unix(),
		"exp":  now.Add(refreshTokenTTL).Unix(),
	})
	refreshStr, err := refreshToken.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessStr,
		RefreshToken: refreshStr,
	}, nil
}
