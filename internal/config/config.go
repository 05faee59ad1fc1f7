// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	GenerationURL     string
	GenerationTimeout time.Duration
	Port              string
	LogLevel          slog.Level
	CORSOrigins       string
}

// Load reads a .env file when there is one and then the process
// environment. Unset variables fall back to local development defaults.
func Load(files ...string) (Config, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load(files...)

	cfg := Config{
		GenerationURL: getenv("GENERATION_SERVICE_URL", "http://localhost:8000"),
		Port:          getenv("PORT", "3000"),
		CORSOrigins:   getenv("CORS_ORIGINS", "http://localhost:5173"),
	}

	timeout, err := time.ParseDuration(getenv("GENERATION_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("GENERATION_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("GENERATION_TIMEOUT: must be positive, got %s", timeout)
	}
	cfg.GenerationTimeout = timeout

	level, err := ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level
	return cfg, nil
}

// ParseLevel maps debug, info, warn and error (any case) to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return l, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
