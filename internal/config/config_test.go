package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

var keys = []string{
	"PORT", "STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "DATABASE_URL", "JWT_SECRET",
	"FRONTEND_URL", "LOG_LEVEL", "LOG_FORMAT", "AUTH_RATE_LIMIT", "AUTH_RATE_BURST", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, DriverMongo)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/appointments")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("AUTH_RATE_LIMIT", "0.5")
	t.Setenv("AUTH_RATE_BURST", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 || cfg.StoreDriver != DriverPostgres || cfg.LogFormat != "text" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.AuthRateLimit != 0.5 || cfg.AuthRateBurst != 2 {
		t.Errorf("rate = %v/%d", cfg.AuthRateLimit, cfg.AuthRateBurst)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{}, "JWT_SECRET"},
		{"bad port", map[string]string{"JWT_SECRET": "s", "PORT": "abc"}, "PORT"},
		{"postgres without url", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"JWT_SECRET": "s", "STORE_DRIVER": "redis"}, "STORE_DRIVER"},
		{"bad log level", map[string]string{"JWT_SECRET": "s", "LOG_LEVEL": "loud"}, "LOG_LEVEL"},
		{"bad log format", map[string]string{"JWT_SECRET": "s", "LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"zero burst", map[string]string{"JWT_SECRET": "s", "AUTH_RATE_BURST": "0"}, "AUTH_RATE_BURST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}
