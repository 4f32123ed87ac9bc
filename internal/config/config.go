package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers selectable with STORE_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port int

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	DatabaseURL   string

	JWTSecret   string
	FrontendURL string

	LogLevel  slog.Level
	LogFormat string

	AuthRateLimit float64
	AuthRateBurst int

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables and validates required fields.
func Load() (Config, error) {
	port, err := getEnvInt("PORT", 8080)
	if err != nil {
		return Config{}, fmt.Errorf("parse PORT: %w", err)
	}

	rateLimit, err := getEnvFloat("AUTH_RATE_LIMIT", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_RATE_LIMIT: %w", err)
	}

	rateBurst, err := getEnvInt("AUTH_RATE_BURST", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse AUTH_RATE_BURST: %w", err)
	}

	shutdown, err := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}

	cfg := Config{
		Port:            port,
		StoreDriver:     strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "doctor_appointments"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		LogLevel:        level,
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "json")),
		AuthRateLimit:   rateLimit,
		AuthRateBurst:   rateBurst,
		ShutdownTimeout: shutdown,
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
		if c.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required for the mongo driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		return fmt.Errorf("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return strconv.ParseFloat(v, 64)
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(v)
}
