package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port     int      `env:"PORT" envDefault:"8080"`
	LogLevel string   `env:"LOG_LEVEL" envDefault:"info"`
	Database Database `envPrefix:"DB_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
}

// Database contains database connection parameters.
type Database struct {
	Path string `env:"PATH" envDefault:"remindmail.db"`
}

// SMTP contains outgoing mail parameters.
type SMTP struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"no-reply@remindmail.local"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
