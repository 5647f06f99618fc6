// Package config loads the API server settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is the API server configuration
type Config struct {
	Address         string        `env:"SERVER_ADDRESS" envDefault:":7000"`
	DBPath          string        `env:"SERVER_DB_PATH" envDefault:"admin-server.db"`
	JWTSecret       string        `env:"SERVER_JWT_SECRET,notEmpty"`
	UploadDir       string        `env:"SERVER_UPLOAD_DIR" envDefault:"uploads"`
	LogLevel        string        `env:"SERVER_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"SERVER_LOG_FORMAT" envDefault:"json"`
	AdminLogin      string        `env:"SERVER_ADMIN_LOGIN" envDefault:"admin"`
	AdminPassword   string        `env:"SERVER_ADMIN_PASSWORD"`
	AccessTokenTTL  time.Duration `env:"SERVER_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"SERVER_REFRESH_TOKEN_TTL" envDefault:"720h"`
	LoginWindow     time.Duration `env:"SERVER_LOGIN_WINDOW" envDefault:"1m"`
	LoginRate       int           `env:"SERVER_LOGIN_RATE" envDefault:"10"`
	TrustedProxies  []string      `env:"SERVER_TRUSTED_PROXIES" envSeparator:","`
	MaxUploadBytes  int64         `env:"SERVER_MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

// Load parses the environment into Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("SERVER_JWT_SECRET must be at least 16 characters")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		return fmt.Errorf("SERVER_REFRESH_TOKEN_TTL must not be shorter than SERVER_ACCESS_TOKEN_TTL")
	}
	if c.LoginRate <= 0 || c.LoginWindow <= 0 {
		return fmt.Errorf("login rate limit must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}
