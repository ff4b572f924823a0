// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the settings shared by the handblast binaries. Command-line
// flags override the environment.
type Config struct {
	ScoreBackend  string  `env:"HANDBLAST_SCORE_BACKEND"  envDefault:"file"`
	ScorePath     string  `env:"HANDBLAST_SCORE_PATH"     envDefault:"score.txt"`
	Seed          uint64  `env:"HANDBLAST_SEED"           envDefault:"0"`
	Smoothing     float64 `env:"HANDBLAST_SMOOTHING"      envDefault:"0.5"`
	PinchDistance float64 `env:"HANDBLAST_PINCH_DISTANCE" envDefault:"50"`
	DebugUI       bool    `env:"HANDBLAST_DEBUG_UI"       envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the binaries cannot run with.
func (c Config) Validate() error {
	switch c.ScoreBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown score backend %q", c.ScoreBackend)
	}
	if c.ScorePath == "" {
		return fmt.Errorf("score path is required")
	}
	if c.Smoothing < 0 || c.Smoothing >= 1 {
		return fmt.Errorf("smoothing %v out of range [0, 1)", c.Smoothing)
	}
	if c.PinchDistance <= 0 {
		return fmt.Errorf("pinch distance must be positive")
	}
	return nil
}
