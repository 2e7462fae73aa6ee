// Package config loads runtime configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime settings. Every field is read from a SPARKY_*
// environment variable.
type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DB overrides the SQLite database path.
	DB string `env:"DB"`

	// RedisURL selects the Redis backend when set, e.g. redis://localhost:6379/0.
	RedisURL       string `env:"REDIS_URL"`
	RedisNamespace string `env:"REDIS_NAMESPACE" envDefault:"sparky"`

	HTTPAddr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:8787"`

	Practice Practice `envPrefix:"PRACTICE_"`
}

// Practice groups quiz engine settings.
type Practice struct {
	// SessionSize is the number of questions in a practice session.
	SessionSize int `env:"SESSION_SIZE" envDefault:"5"`

	// CacheVersion is the question cache format tag. Bumping it
	// invalidates every cached pool.
	CacheVersion string `env:"CACHE_VERSION" envDefault:"v4"`

	// Seed fixes the shuffler seed. Zero seeds from the clock.
	Seed uint64 `env:"SEED" envDefault:"0"`

	// Offline serves questions from the built-in sample bank instead of
	// calling an LLM.
	Offline bool `env:"OFFLINE" envDefault:"false"`
}

// Load reads .env (if present) and parses SPARKY_* variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return parse(nil)
}

func parse(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	opts := env.Options{Prefix: "SPARKY_", Environment: environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges env tags cannot express.
func (c *Config) Validate() error {
	if c.Practice.SessionSize < 1 {
		return fmt.Errorf("SPARKY_PRACTICE_SESSION_SIZE must be at least 1, got %d", c.Practice.SessionSize)
	}
	if c.Practice.CacheVersion == "" {
		return fmt.Errorf("SPARKY_PRACTICE_CACHE_VERSION must not be empty")
	}
	return nil
}
