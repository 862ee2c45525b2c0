// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/tasknest/tasknest/internal/auth"
)

// ErrInsecureSecret is returned when production runs without a real signing secret.
var ErrInsecureSecret = errors.New("AUTH_SECRET must be set to a non-default value in production")

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	AppPort     int    `env:"APP_PORT" envDefault:"8000"`
	ProjectName string `env:"PROJECT_NAME" envDefault:"Todo API"`

	// Token signing
	AuthSecret  string `env:"AUTH_SECRET"`
	TokenFormat string `env:"TOKEN_FORMAT" envDefault:"jwt"`

	// Storage: postgres://, postgresql:// or sqlite://
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite://todo.db"`

	// Cache (Redis). Empty disables the profile cache.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000,http://localhost:3003"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// UsingDevSecret is set when AuthSecret fell back to the built-in development secret.
	UsingDevSecret bool `env:"-"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load reads an optional .env file, then parses environment variables.
// Variables already set in the environment take precedence over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.resolveSecret(); err != nil {
		return nil, err
	}

	switch cfg.TokenFormat {
	case auth.FormatJWT, auth.FormatPaseto:
	default:
		return nil, fmt.Errorf("invalid TOKEN_FORMAT %q: want %s or %s", cfg.TokenFormat, auth.FormatJWT, auth.FormatPaseto)
	}

	return cfg, nil
}

// resolveSecret refuses the development secret in production and falls back to it elsewhere.
func (c *Config) resolveSecret() error {
	if c.AuthSecret != "" && c.AuthSecret != auth.DevSecret {
		return nil
	}
	if c.IsProduction() {
		return ErrInsecureSecret
	}
	c.AuthSecret = auth.DevSecret
	c.UsingDevSecret = true
	return nil
}
