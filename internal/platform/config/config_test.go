package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}

	if cfg.ListenAddr != ":8080" {
		t.Errorf("Expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.MaxTimer != 1000 {
		t.Errorf("Expected default max timer 1000, got %v", cfg.MaxTimer)
	}
	if cfg.StartTimer != 1000 {
		t.Errorf("Expected start timer to default to max, got %v", cfg.StartTimer)
	}
	if cfg.TickInterval != 60*time.Second {
		t.Errorf("Expected default tick interval 60s, got %v", cfg.TickInterval)
	}
	if len(cfg.Milestones) != 3 || cfg.Milestones[0] != 750 {
		t.Errorf("Expected default milestones 750,500,250, got %v", cfg.Milestones)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AEGIS_MAX_TIMER", "2000")
	t.Setenv("AEGIS_START_TIMER", "1500")
	t.Setenv("AEGIS_TICK_INTERVAL", "30s")
	t.Setenv("AEGIS_MILESTONES", "1800,900")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with overrides failed: %v", err)
	}
	if cfg.MaxTimer != 2000 || cfg.StartTimer != 1500 {
		t.Errorf("Timer overrides not applied: max=%v start=%v", cfg.MaxTimer, cfg.StartTimer)
	}
	if cfg.TickInterval != 30*time.Second {
		t.Errorf("Interval override not applied: %v", cfg.TickInterval)
	}
	if len(cfg.Milestones) != 2 || cfg.Milestones[0] != 1800 {
		t.Errorf("Milestone override not applied: %v", cfg.Milestones)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparseable max timer", "AEGIS_MAX_TIMER", "plenty"},
		{"zero max timer", "AEGIS_MAX_TIMER", "0"},
		{"start above max", "AEGIS_START_TIMER", "5000"},
		{"negative decay", "AEGIS_DECAY_RATE", "-1"},
		{"zero interval", "AEGIS_TICK_INTERVAL", "0s"},
		{"milestone above max", "AEGIS_MILESTONES", "1500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected %s=%s to be rejected", tc.key, tc.value)
			}
		})
	}
}

func TestNewSeedNonColliding(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("NewSeed failed: %v", err)
	}
	if a == b {
		t.Errorf("Two fresh seeds collided: %d", a)
	}
}
