package game

import "math/rand"

// Adversary encapsulates Aegis' personality state and its autonomous
// defend / counter-attack / personality-switch behaviors. It computes gains
// and decisions; the Engine owns the timer and applies clamping.
//
// All methods draw from the injected rand source and must be called under
// the Engine's lock.
type Adversary struct {
	personality Personality
	rng         *rand.Rand
}

// NewAdversary creates the adversary with its opening personality.
func NewAdversary(p Personality, rng *rand.Rand) *Adversary {
	return &Adversary{personality: p, rng: rng}
}

// Personality returns the current behavioral mode.
func (a *Adversary) Personality() Personality {
	return a.personality
}

// DefendGain draws a personality-dependent timer increase for the periodic
// defense action. When the timer sits under the personality's escalation
// threshold the adversary spends more effort and the gain is boosted.
func (a *Adversary) DefendGain(timer, maxTimer float64) float64 {
	var gain, threshold float64

	switch a.personality {
	case PersonalityAggressive:
		gain = a.uniform(5.0, 10.0)
		threshold = 0.75 * maxTimer
	case PersonalityDefensive:
		gain = a.uniform(2.0, 5.0)
		threshold = 0.25 * maxTimer
	default: // Curious: half the time it does nothing at all
		gain = a.coinFlip(a.uniform(3.0, 8.0))
		threshold = a.uniform(0.25, 0.75) * maxTimer
	}

	if timer < threshold {
		gain *= LosingBoost
	}
	return gain
}

// CounterGain draws the larger, threshold-independent increase used when the
// adversary retaliates against a burst of attacks.
func (a *Adversary) CounterGain() float64 {
	switch a.personality {
	case PersonalityAggressive:
		return a.uniform(10.0, 20.0)
	case PersonalityDefensive:
		return a.uniform(4.0, 8.0)
	default:
		return a.coinFlip(a.uniform(6.0, 18.0))
	}
}

// MaybeSwitchPersonality rolls the dynamic personality switch. The switch
// probability rises as the adversary loses ground. A re-roll onto the current
// personality is silent: the method reports changed=false and no event should
// be emitted.
func (a *Adversary) MaybeSwitchPersonality(timer, maxTimer float64) (previous Personality, changed bool) {
	previous = a.personality

	prob := SwitchBaseProb
	if maxTimer > 0 {
		deficit := maxTimer - timer
		if deficit < 0 {
			deficit = 0
		}
		prob += deficit / maxTimer * SwitchLossGain
	}

	if a.rng.Float64() >= prob {
		return previous, false
	}

	var next Personality
	if timer < 0.5*maxTimer {
		next = PersonalityAggressive
	} else if a.rng.Intn(2) == 0 {
		next = PersonalityDefensive
	} else {
		next = PersonalityCurious
	}

	if next == previous {
		return previous, false
	}
	a.personality = next
	return previous, true
}

func (a *Adversary) uniform(lo, hi float64) float64 {
	return lo + a.rng.Float64()*(hi-lo)
}

// coinFlip returns v half the time and 0 the other half.
func (a *Adversary) coinFlip(v float64) float64 {
	if a.rng.Intn(2) == 0 {
		return 0
	}
	return v
}
