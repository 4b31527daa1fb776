package game

import (
	"testing"
	"time"
)

func TestDistributePoolEvenSplit(t *testing.T) {
	// Setup: four participants active inside the eligibility window
	log := NewActivityLog()
	now := time.Now()
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		log.Record(id, now.Add(-time.Minute))
	}

	// Act
	out := distributePool(750, 10.0, log, now)

	// Assert
	if out.Result != MilestoneDistributed {
		t.Fatalf("Expected distributed outcome, got %s", out.Result)
	}
	if len(out.Rewards) != 4 {
		t.Fatalf("Expected 4 rewards, got %d", len(out.Rewards))
	}
	for _, r := range out.Rewards {
		if r.Amount != 2.5 {
			t.Errorf("Expected 2.5 per participant, got %.4f for %s", r.Amount, r.ParticipantID)
		}
	}
}

func TestDistributePoolNoActive(t *testing.T) {
	log := NewActivityLog()
	now := time.Now()
	log.Record("stale", now.Add(-2*time.Hour))

	out := distributePool(500, 10.0, log, now)

	if out.Result != MilestoneNoActive {
		t.Errorf("Expected no_active outcome, got %s", out.Result)
	}
	if len(out.Rewards) != 0 {
		t.Errorf("Expected no rewards, got %v", out.Rewards)
	}
}

func TestDistributePoolEmptyAndDust(t *testing.T) {
	log := NewActivityLog()
	now := time.Now()
	log.Record("u1", now)
	log.Record("u2", now)

	if out := distributePool(250, 0, log, now); out.Result != MilestoneEmptyPool {
		t.Errorf("Expected empty_pool outcome, got %s", out.Result)
	}

	// 0.015 / 2 participants = 0.0075 per head, under the minimum
	if out := distributePool(250, 0.015, log, now); out.Result != MilestoneDust {
		t.Errorf("Expected dust outcome, got %s", out.Result)
	}
}

func TestMilestoneTrackerHighestFirstOnePerTick(t *testing.T) {
	tracker := newMilestoneTracker([]float64{750, 500, 250}, 1000)

	// A huge drop crosses two thresholds; only the highest fires
	ms, ok := tracker.crossed(400)
	if !ok || ms != 750 {
		t.Fatalf("Expected highest crossed threshold 750, got %v (ok=%v)", ms, ok)
	}
	tracker.advance(1000, 400, true)

	// The next tick picks up the remaining one
	ms, ok = tracker.crossed(390)
	if !ok || ms != 500 {
		t.Fatalf("Expected 500 on the following tick, got %v (ok=%v)", ms, ok)
	}
}

func TestMilestoneTrackerFiresOncePerThreshold(t *testing.T) {
	tracker := newMilestoneTracker([]float64{750, 500, 250}, 1000)

	ms, ok := tracker.crossed(740)
	if !ok || ms != 750 {
		t.Fatalf("Expected 750 to fire, got %v (ok=%v)", ms, ok)
	}
	tracker.advance(1000, 740, true)

	// Hovering just below the threshold must not re-fire it
	if _, ok := tracker.crossed(745); ok {
		t.Errorf("Threshold re-fired without the timer being restored above it")
	}
	tracker.advance(740, 745, false)

	// Rising back above 750 and dropping again re-arms it
	tracker.advance(800, 790, false)
	ms, ok = tracker.crossed(730)
	if !ok || ms != 750 {
		t.Errorf("Expected re-armed threshold to fire again, got %v (ok=%v)", ms, ok)
	}
}

func TestMilestoneTrackerNoFireWhileAbove(t *testing.T) {
	tracker := newMilestoneTracker([]float64{750, 500, 250}, 1000)

	if _, ok := tracker.crossed(760); ok {
		t.Errorf("No threshold should fire while the timer stays above all of them")
	}
}
