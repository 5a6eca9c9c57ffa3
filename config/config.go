package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config is resolved once at startup and passed to whatever needs it
type Config struct {
	Addr           string        `env:"SPADES_ADDR,default=:8000"`
	AssetsDir      string        `env:"SPADES_ASSETS_DIR,default=./build"`
	Version        string        `env:"SPADES_VERSION,default=0.1.0"`
	AllowedOrigins []string      `env:"SPADES_ALLOWED_ORIGINS,default=*"`
	HandSize       int           `env:"SPADES_HAND_SIZE,default=13"`
	WriteTimeout   time.Duration `env:"SPADES_WRITE_TIMEOUT,default=10s"`
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
