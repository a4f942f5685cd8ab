package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the service configuration, read from the environment.
type Config struct {
	Port              string `env:"PORT" envDefault:"8080"`
	TaxTablePath      string `env:"TAX_TABLE_PATH"`
	CareerRegistryURL string `env:"CAREER_REGISTRY_URL"`
	AuthSigningKey    string `env:"AUTH_SIGNING_KEY"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
