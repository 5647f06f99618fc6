// Package config loads the admin client settings from the environment.
// Command-line flags override the loaded values.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is the admin client configuration
type Config struct {
	BaseURL   string        `env:"ADMIN_API_BASE_URL" envDefault:"http://localhost:7000/api/v1"`
	DBPath    string        `env:"ADMIN_DB_PATH" envDefault:"admin-client.db"`
	LogLevel  string        `env:"ADMIN_LOG_LEVEL" envDefault:"warn"`
	LogFormat string        `env:"ADMIN_LOG_FORMAT" envDefault:"text"`
	Timeout   time.Duration `env:"ADMIN_API_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment into Config
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("parse config: ADMIN_API_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}
