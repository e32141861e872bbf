// Package config reads questmgr settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the runtime settings of the questmgr binary. Command line
// flags override these values.
type Config struct {
	DBPath          string `env:"QUESTMGR_DB" envDefault:"questmgr.db"`
	CatalogDir      string `env:"QUESTMGR_CATALOG" envDefault:"catalog"`
	Slot            string `env:"QUESTMGR_SLOT" envDefault:"autosave"`
	PlayTutorial    bool   `env:"QUESTMGR_PLAY_TUTORIAL" envDefault:"true"`
	Seed            int64  `env:"QUESTMGR_SEED" envDefault:"1"`
	GeneratorChance int    `env:"QUESTMGR_GENERATOR_CHANCE" envDefault:"50"`
	LogLevel        string `env:"QUESTMGR_LOG_LEVEL" envDefault:"warn"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.GeneratorChance < 1 || c.GeneratorChance > 100 {
		return fmt.Errorf("generator chance must be within 1..100, got %d", c.GeneratorChance)
	}
	if c.Slot == "" {
		return fmt.Errorf("save slot name is required")
	}
	return nil
}
