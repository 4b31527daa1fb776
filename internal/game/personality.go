package game

import "math/rand"

// Personality is the adversary's current behavioral mode. It scales the
// magnitude and thresholds of every autonomous action.
type Personality string

const (
	PersonalityAggressive Personality = "Aggressive"
	PersonalityDefensive  Personality = "Defensive"
	PersonalityCurious    Personality = "Curious"
)

var personalities = []Personality{
	PersonalityAggressive,
	PersonalityDefensive,
	PersonalityCurious,
}

// RandomPersonality draws the opening personality uniformly at game start.
func RandomPersonality(rng *rand.Rand) Personality {
	return personalities[rng.Intn(len(personalities))]
}
