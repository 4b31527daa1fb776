package game

import (
	"sort"
	"time"
)

type attackRecord struct {
	participantID string
	at            time.Time
}

// ActivityLog tracks when each participant last attacked, plus a rolling
// record of individual attacks for the counter-attack trigger window.
// All access happens under the Engine's lock.
type ActivityLog struct {
	lastAttack map[string]time.Time
	recent     []attackRecord
}

// NewActivityLog creates an empty activity log.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{lastAttack: make(map[string]time.Time)}
}

// Record notes an attack by participantID at now. Entries older than the
// longest query window are pruned opportunistically; they can never be read
// again, so dropping them does not affect any query.
func (a *ActivityLog) Record(participantID string, now time.Time) {
	a.lastAttack[participantID] = now
	a.recent = append(a.recent, attackRecord{participantID: participantID, at: now})
	a.prune(now)
}

// RecentAttacks reports total attacks and distinct attackers within the
// counter-attack trigger window ending at now.
func (a *ActivityLog) RecentAttacks(now time.Time) (attacks int, attackers int) {
	cutoff := now.Add(-CounterWindow)
	seen := make(map[string]struct{})
	for _, r := range a.recent {
		if r.at.Before(cutoff) {
			continue
		}
		attacks++
		seen[r.participantID] = struct{}{}
	}
	return attacks, len(seen)
}

// ResetRecentWindow clears the counter-attack trigger window. Called after a
// counter-attack fires so the same burst does not retrigger it immediately.
// Last-attack times are untouched: milestone eligibility keeps its full hour.
func (a *ActivityLog) ResetRecentWindow() {
	a.recent = a.recent[:0]
}

// ActiveParticipants returns the ids of participants who attacked within the
// milestone eligibility window ending at now, in stable sorted order.
func (a *ActivityLog) ActiveParticipants(now time.Time) []string {
	cutoff := now.Add(-ActivityWindow)
	var active []string
	for id, last := range a.lastAttack {
		if !last.Before(cutoff) {
			active = append(active, id)
		}
	}
	sort.Strings(active)
	return active
}

// prune drops state no time-windowed query can ever observe again.
func (a *ActivityLog) prune(now time.Time) {
	counterCutoff := now.Add(-CounterWindow)
	kept := a.recent[:0]
	for _, r := range a.recent {
		if !r.at.Before(counterCutoff) {
			kept = append(kept, r)
		}
	}
	a.recent = kept

	activityCutoff := now.Add(-ActivityWindow)
	for id, last := range a.lastAttack {
		if last.Before(activityCutoff) {
			delete(a.lastAttack, id)
		}
	}
}
