// Package config loads server configuration from environment variables.
// Every tunable the game rules depend on at startup lives here.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all startup parameters for the Aegis server.
type Config struct {
	// Process / I-O surface
	ListenAddr   string `env:"AEGIS_LISTEN_ADDR" envDefault:":8080"`
	DatabasePath string `env:"AEGIS_DB_PATH" envDefault:"aegis.db"`

	// Game rules
	MaxTimer         float64       `env:"AEGIS_MAX_TIMER" envDefault:"1000"`
	StartTimer       float64       `env:"AEGIS_START_TIMER" envDefault:"-1"` // -1 means "start at MaxTimer"
	DecayRate        float64       `env:"AEGIS_DECAY_RATE" envDefault:"0.1"` // timer units per second
	TickInterval     time.Duration `env:"AEGIS_TICK_INTERVAL" envDefault:"60s"`
	Milestones       []float64     `env:"AEGIS_MILESTONES" envDefault:"750,500,250"`
	RewardMultiplier float64       `env:"AEGIS_REWARD_MULTIPLIER" envDefault:"1.0"`

	// Randomness. 0 draws a fresh seed at boot; any other value makes a
	// whole game run reproducible.
	Seed int64 `env:"AEGIS_SEED" envDefault:"0"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxTimer <= 0 {
		return fmt.Errorf("AEGIS_MAX_TIMER must be positive, got %v", c.MaxTimer)
	}
	if c.StartTimer < 0 {
		c.StartTimer = c.MaxTimer
	}
	if c.StartTimer > c.MaxTimer {
		return fmt.Errorf("AEGIS_START_TIMER %v exceeds AEGIS_MAX_TIMER %v", c.StartTimer, c.MaxTimer)
	}
	if c.DecayRate < 0 {
		return fmt.Errorf("AEGIS_DECAY_RATE must not be negative, got %v", c.DecayRate)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("AEGIS_TICK_INTERVAL must be positive, got %v", c.TickInterval)
	}
	for _, ms := range c.Milestones {
		if ms <= 0 || ms >= c.MaxTimer {
			return fmt.Errorf("milestone %v outside (0, %v)", ms, c.MaxTimer)
		}
	}
	return nil
}
