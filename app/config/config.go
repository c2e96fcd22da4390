// Package config handles application configuration loading from the
// environment, with optional .env file support for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Badger database directory
	DBPath string

	// Rendered-HTML cache
	CacheTTL time.Duration

	// Initial admin account, seeded on first start
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment, applying defaults for
// development. A .env file in the working directory is honored when
// present. Returns an error if critical values are missing in production.
func Load() (*Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		Host:   envOrDefault("APP_HOST", "0.0.0.0"),
		Port:   envOrDefault("APP_PORT", "8080"),
		Env:    envOrDefault("APP_ENV", "development"),
		DBPath: envOrDefault("DB_PATH", "data/badger"),

		AdminUsername: envOrDefault("ADMIN_USERNAME", "admin"),
		AdminEmail:    envOrDefault("ADMIN_EMAIL", "admin@localhost"),
		AdminPassword: envOrDefault("ADMIN_PASSWORD", "changeme123"),
	}

	ttl, err := time.ParseDuration(envOrDefault("CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %v", err)
	}
	cfg.CacheTTL = ttl

	if cfg.Env == "production" && cfg.AdminPassword == "changeme123" {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be set in production")
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
