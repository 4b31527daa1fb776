package game

import "time"

// Gameplay tuning. These are the balance knobs of the whole protocol;
// changing any of them changes the game, so they live in one place.
const (
	// Scoring
	FullEffectReduction = 2.0  // an unblocked word's base contribution
	PartialBlockFactor  = 0.2  // effect retained by a partially blocked word
	PoolCut             = 0.05 // share of every reduction feeding the milestone pool
	MinRewardPerUser    = 0.01 // splits below this are dust and get discarded

	// Keyword suppression windows
	PartialBlockWindow = 15 * time.Minute // Aggressive-only reduced-effect stage
	FullBlockWindow    = 30 * time.Minute // total suppression, then the entry expires

	// Counter-attack trigger (trailing window over the activity log)
	CounterWindow        = 60 * time.Second
	CounterAttackerLimit = 3 // distinct attackers in the window
	CounterAttackLimit   = 5 // total attacks in the window

	// Milestone distribution eligibility
	ActivityWindow = time.Hour

	// Adversary defense
	DefendChance   = 0.5 // probability of a defense action per tick
	LosingBoost    = 1.5 // effort multiplier when the timer is under threshold
	SwitchBaseProb = 0.05
	SwitchLossGain = 0.5 // how fast the switch probability rises while losing
)

// RepeatLimit is the per-message repetition count at which the adversary
// starts resisting a word, by personality.
func RepeatLimit(p Personality) int {
	switch p {
	case PersonalityAggressive:
		return 2
	case PersonalityDefensive:
		return 5
	default: // Curious is more lenient
		return 10
	}
}
