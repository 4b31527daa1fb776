package game

import (
	"math/rand"
	"testing"
)

func TestDefendGainRanges(t *testing.T) {
	tests := []struct {
		name        string
		personality Personality
		timer       float64 // above every escalation threshold: no boost
		lo, hi      float64
		allowZero   bool
	}{
		{"aggressive", PersonalityAggressive, 900, 5.0, 10.0, false},
		{"defensive", PersonalityDefensive, 900, 2.0, 5.0, false},
		{"curious", PersonalityCurious, 900, 3.0, 8.0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adv := NewAdversary(tc.personality, rand.New(rand.NewSource(7)))
			for i := 0; i < 200; i++ {
				gain := adv.DefendGain(tc.timer, 1000)
				if gain == 0 {
					if !tc.allowZero {
						t.Fatalf("Unexpected zero gain for %s", tc.personality)
					}
					continue
				}
				if gain < tc.lo || gain > tc.hi {
					t.Fatalf("Gain %.3f outside [%.1f, %.1f] for %s", gain, tc.lo, tc.hi, tc.personality)
				}
			}
		})
	}
}

func TestDefendGainBoostedWhenLosing(t *testing.T) {
	// Setup: Aggressive escalates under 75% of max, so timer=100 is boosted
	adv := NewAdversary(PersonalityAggressive, rand.New(rand.NewSource(11)))

	for i := 0; i < 200; i++ {
		gain := adv.DefendGain(100, 1000)
		if gain < 5.0*LosingBoost || gain > 10.0*LosingBoost {
			t.Fatalf("Boosted gain %.3f outside [%.1f, %.1f]", gain, 5.0*LosingBoost, 10.0*LosingBoost)
		}
	}
}

func TestCounterGainRanges(t *testing.T) {
	tests := []struct {
		name        string
		personality Personality
		lo, hi      float64
		allowZero   bool
	}{
		{"aggressive", PersonalityAggressive, 10.0, 20.0, false},
		{"defensive", PersonalityDefensive, 4.0, 8.0, false},
		{"curious", PersonalityCurious, 6.0, 18.0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adv := NewAdversary(tc.personality, rand.New(rand.NewSource(13)))
			for i := 0; i < 200; i++ {
				gain := adv.CounterGain()
				if gain == 0 {
					if !tc.allowZero {
						t.Fatalf("Unexpected zero counter gain for %s", tc.personality)
					}
					continue
				}
				if gain < tc.lo || gain > tc.hi {
					t.Fatalf("Counter gain %.3f outside [%.1f, %.1f]", gain, tc.lo, tc.hi)
				}
			}
		})
	}
}

func TestSwitchTargetsAggressiveWhenLosing(t *testing.T) {
	// With the timer at 10% the switch probability is near one half, so 300
	// rolls will see switches; every switch below half max must land on
	// Aggressive.
	adv := NewAdversary(PersonalityDefensive, rand.New(rand.NewSource(17)))

	switched := 0
	for i := 0; i < 300; i++ {
		previous, changed := adv.MaybeSwitchPersonality(100, 1000)
		if changed {
			switched++
			if adv.Personality() != PersonalityAggressive {
				t.Fatalf("Expected switch below half max to target Aggressive, got %s", adv.Personality())
			}
			if previous == adv.Personality() {
				t.Fatalf("Reported a change onto the same personality")
			}
			// Reset so the next roll can switch again
			adv.personality = PersonalityDefensive
		} else if adv.Personality() != PersonalityDefensive {
			t.Fatalf("Personality mutated despite changed=false")
		}
	}
	if switched == 0 {
		t.Errorf("Expected at least one switch over 300 rolls at high deficit")
	}
}

func TestSwitchAboveHalfAvoidsAggressive(t *testing.T) {
	adv := NewAdversary(PersonalityAggressive, rand.New(rand.NewSource(19)))

	for i := 0; i < 300; i++ {
		_, changed := adv.MaybeSwitchPersonality(900, 1000)
		if changed {
			if p := adv.Personality(); p != PersonalityDefensive && p != PersonalityCurious {
				t.Fatalf("Expected switch above half max to pick Defensive or Curious, got %s", p)
			}
			adv.personality = PersonalityAggressive
		}
	}
}

func TestSwitchRerollOntoSelfIsSilent(t *testing.T) {
	// Below half max every successful roll lands on Aggressive; starting from
	// Aggressive they must all report changed=false.
	adv := NewAdversary(PersonalityAggressive, rand.New(rand.NewSource(23)))

	for i := 0; i < 300; i++ {
		if _, changed := adv.MaybeSwitchPersonality(100, 1000); changed {
			t.Fatalf("Re-roll onto the current personality must be silent")
		}
	}
}
