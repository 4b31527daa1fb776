package game

import "time"

// Settings are the startup parameters of one game instance. They are fixed
// for the lifetime of the Engine.
type Settings struct {
	MaxTimer         float64
	StartTimer       float64
	DecayRate        float64 // timer units shed per second of nominal tick time
	TickInterval     time.Duration
	Milestones       []float64
	RewardMultiplier float64
}

// DefaultSettings returns the canonical game parameters.
func DefaultSettings() Settings {
	return Settings{
		MaxTimer:         1000.0,
		StartTimer:       1000.0,
		DecayRate:        0.1,
		TickInterval:     60 * time.Second,
		Milestones:       []float64{750, 500, 250},
		RewardMultiplier: 1.0,
	}
}

// TerminalState classifies how (and whether) the game has ended.
type TerminalState string

const (
	// TerminalNone means the game is still running.
	TerminalNone TerminalState = ""
	// TerminalPlayersWon means the timer reached zero.
	TerminalPlayersWon TerminalState = "players_won"
	// TerminalAdversaryWon means the timer saturated at its maximum.
	TerminalAdversaryWon TerminalState = "adversary_won"
)

// gameState is the single shared mutable aggregate. It is never exposed
// directly; the Engine serializes all access behind its lock.
type gameState struct {
	timer         float64
	maxTimer      float64
	milestonePool float64
	terminal      TerminalState
}

// clampTimer enforces 0 <= timer <= maxTimer after every mutation.
func (s *gameState) clampTimer() {
	if s.timer < 0 {
		s.timer = 0
	}
	if s.timer > s.maxTimer {
		s.timer = s.maxTimer
	}
}

// Snapshot is a read-only copy of the observable game state.
type Snapshot struct {
	Timer         float64       `json:"timer"`
	MaxTimer      float64       `json:"max_timer"`
	Personality   Personality   `json:"personality"`
	MilestonePool float64       `json:"milestone_pool"`
	Terminal      TerminalState `json:"terminal,omitempty"`
	TickCount     int64         `json:"tick_count"`
}
