package game

import (
	"sort"
	"time"
)

// MilestoneResult classifies what a threshold crossing produced.
type MilestoneResult string

const (
	// MilestoneDistributed means every active participant got a cut.
	MilestoneDistributed MilestoneResult = "distributed"
	// MilestoneNoActive means nobody attacked within the eligibility window.
	MilestoneNoActive MilestoneResult = "no_active"
	// MilestoneEmptyPool means the pool held nothing to split.
	MilestoneEmptyPool MilestoneResult = "empty_pool"
	// MilestoneDust means the per-user split fell under the minimum and the
	// pool was discarded rather than redistributed.
	MilestoneDust MilestoneResult = "dust"
)

// Reward is one participant's share of a distributed milestone pool.
type Reward struct {
	ParticipantID string
	Amount        float64
}

// MilestoneOutcome reports one fired threshold. Whatever the result, the
// pool is reset to zero when a milestone fires.
type MilestoneOutcome struct {
	Threshold float64
	Result    MilestoneResult
	Pool      float64 // pool size at the moment of firing
	Rewards   []Reward
}

// milestoneTracker watches the timer crossing fixed thresholds. The
// reference value prevents a threshold from re-firing: once the timer has
// passed below it the reference follows, and timer growth alone can never
// restore the reference above a fired threshold.
type milestoneTracker struct {
	thresholds []float64 // sorted descending
	lastRef    float64
}

func newMilestoneTracker(thresholds []float64, startTimer float64) *milestoneTracker {
	sorted := make([]float64, len(thresholds))
	copy(sorted, thresholds)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	return &milestoneTracker{thresholds: sorted, lastRef: startTimer}
}

// crossed returns the highest threshold the timer passed downward through
// since the last reference value, or 0 with ok=false. At most one threshold
// fires per tick.
func (m *milestoneTracker) crossed(postTick float64) (float64, bool) {
	for _, ms := range m.thresholds {
		if postTick <= ms && ms < m.lastRef {
			return ms, true
		}
	}
	return 0, false
}

// advance updates the reference value after a tick. When a milestone fired,
// the reference snaps to the post-tick timer. Otherwise it tracks the
// pre-tick value while that value is still above the lowest threshold,
// preserving the "last value above the floor" needed for future checks.
func (m *milestoneTracker) advance(preTick, postTick float64, fired bool) {
	if fired {
		m.lastRef = postTick
		return
	}
	if len(m.thresholds) == 0 {
		return
	}
	floor := m.thresholds[len(m.thresholds)-1]
	if preTick > floor {
		m.lastRef = preTick
	}
}

// distributePool splits the milestone pool among active participants and
// returns the outcome. The caller owns the pool value and must reset it.
func distributePool(threshold, pool float64, activity *ActivityLog, now time.Time) MilestoneOutcome {
	active := activity.ActiveParticipants(now)

	if len(active) == 0 {
		return MilestoneOutcome{Threshold: threshold, Result: MilestoneNoActive, Pool: pool}
	}
	if pool <= 0 {
		return MilestoneOutcome{Threshold: threshold, Result: MilestoneEmptyPool, Pool: pool}
	}

	perUser := pool / float64(len(active))
	if perUser < MinRewardPerUser {
		return MilestoneOutcome{Threshold: threshold, Result: MilestoneDust, Pool: pool}
	}

	rewards := make([]Reward, 0, len(active))
	for _, id := range active {
		rewards = append(rewards, Reward{ParticipantID: id, Amount: perUser})
	}
	return MilestoneOutcome{Threshold: threshold, Result: MilestoneDistributed, Pool: pool, Rewards: rewards}
}
