package events

// GameStartedPayload announces a fresh game and the adversary's opening mood.
type GameStartedPayload struct {
	Personality string  `json:"personality"`
	Timer       float64 `json:"timer"`
	MaxTimer    float64 `json:"max_timer"`
}

// TimerTickPayload is attached to every scheduler tick.
type TimerTickPayload struct {
	TickNumber int64   `json:"tick_number"`
	Timer      float64 `json:"timer"`
	Decay      float64 `json:"decay"`
}

// AttackResolvedPayload records the effect of a successful attack.
type AttackResolvedPayload struct {
	Phrase           string  `json:"phrase"`
	TotalReduction   float64 `json:"total_reduction"`
	UniquenessBonus  float64 `json:"uniqueness_bonus"`
	Timer            float64 `json:"timer"`
	IndividualReward float64 `json:"individual_reward"`
	PoolContribution float64 `json:"pool_contribution"`
}

// AttackBlockedPayload records a fully short-circuited attack.
type AttackBlockedPayload struct {
	Phrase string `json:"phrase"`
	Word   string `json:"word"`
}

// AttackRejectedPayload records an attack submitted after the game ended.
type AttackRejectedPayload struct {
	Phrase string `json:"phrase"`
	Reason string `json:"reason"`
}

// CounterAttackPayload records an adversary counter strike.
type CounterAttackPayload struct {
	Personality string  `json:"personality"`
	Gain        float64 `json:"gain"`
	Timer       float64 `json:"timer"`
}

// WordResistedPayload records a word entering suppression.
type WordResistedPayload struct {
	Word        string `json:"word"`
	Personality string `json:"personality"`
}

// DefendedPayload records a periodic adversary defense.
type DefendedPayload struct {
	Personality string  `json:"personality"`
	Gain        float64 `json:"gain"`
	Timer       float64 `json:"timer"`
}

// PersonalityShiftPayload records an actual personality change.
// Silent re-rolls onto the same personality never produce an event.
type PersonalityShiftPayload struct {
	Previous string `json:"previous"`
	Current  string `json:"current"`
}

// MilestoneReward is one participant's cut of a distributed pool.
type MilestoneReward struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// MilestoneReachedPayload records a threshold crossing and the pool split.
type MilestoneReachedPayload struct {
	Threshold float64           `json:"threshold"`
	Outcome   string            `json:"outcome"` // "distributed", "no_active", "empty_pool", "dust"
	Pool      float64           `json:"pool"`
	Rewards   []MilestoneReward `json:"rewards,omitempty"`
}

// VictoryPayload records the winning attack.
type VictoryPayload struct {
	ParticipantID string  `json:"participant_id"`
	Phrase        string  `json:"phrase"`
	Timer         float64 `json:"timer"`
}

// AdversaryVictoryPayload records the timer saturating at its maximum.
type AdversaryVictoryPayload struct {
	MaxTimer float64 `json:"max_timer"`
}
