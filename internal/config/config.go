// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// devSecret is used when JWT_SECRET is unset and DEV=true.
const devSecret = "orderlines-dev-secret-do-not-use"

// Config holds everything the server needs at startup.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    slog.Level
	LogFormat   string
	MetricsPath string
	Dev         bool
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration from environment variables:
//
//	PORT          listen port (default 8080)
//	DB_PATH       SQLite database file (default ./data/orders.db)
//	JWT_SECRET    token signing secret (required unless DEV=true)
//	TOKEN_TTL     session token lifetime, Go duration (default 24h)
//	LOG_LEVEL     debug, info, warn, error (default info)
//	LOG_FORMAT    text or json (default text)
//	METRICS_PATH  Prometheus endpoint (default /metrics)
//	DEV           true enables development defaults
func Load() (*Config, error) {
	cfg := &Config{
		DBPath:      getEnv("DB_PATH", "./data/orders.db"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		MetricsPath: getEnv("METRICS_PATH", "/metrics"),
	}

	var err error
	if cfg.Dev, err = strconv.ParseBool(getEnv("DEV", "false")); err != nil {
		return nil, fmt.Errorf("invalid DEV: %w", err)
	}

	if cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080")); err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("TOKEN_TTL must be positive")
	}

	if cfg.LogLevel, err = ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", cfg.LogFormat)
	}

	if !strings.HasPrefix(cfg.MetricsPath, "/") {
		return nil, fmt.Errorf("invalid METRICS_PATH %q: must start with /", cfg.MetricsPath)
	}

	if cfg.JWTSecret == "" {
		if !cfg.Dev {
			return nil, errors.New("JWT_SECRET is required (set DEV=true to use a development secret)")
		}
		cfg.JWTSecret = devSecret
	}

	return cfg, nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
