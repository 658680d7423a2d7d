// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/character-api/internal/errors"
)

// Config holds all configuration for the character API server
type Config struct {
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	Redis           RedisConfig   `envPrefix:"REDIS_"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables win over .env entries.
func Load() (*Config, error) {
	// godotenv.Load does not override variables already set.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		vb.InvalidField("HTTP_PORT", "must be a valid port number")
	}
	errors.ValidateRequired("REDIS_ADDR", c.Redis.Addr, vb)

	return vb.Build()
}
