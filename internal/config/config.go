// Package config loads client configuration from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envBackendURL = "MOCKMATE_BACKEND_URL"
	envTimeout    = "MOCKMATE_HTTP_TIMEOUT"
)

// Config is the resolved client configuration. BackendURL may be empty;
// actions that need it report a configuration error when attempted, the
// program itself still starts.
type Config struct {
	BackendURL string
	Timeout    time.Duration
}

// Load reads a .env file if present (best effort) and resolves the
// environment. Flag values, when set, are applied on top by the caller.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BackendURL: os.Getenv(envBackendURL),
		Timeout:    30 * time.Second,
	}
	if v := os.Getenv(envTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	return cfg
}
