package game

import "time"

// BlockStage is the suppression stage of a word.
type BlockStage int

const (
	// StageUnblocked means the word is fully effective.
	StageUnblocked BlockStage = iota
	// StagePartial means the word retains a fraction of its normal effect.
	StagePartial
	// StageFull means the word contributes nothing and aborts the whole attack.
	StageFull
)

// BlockStatus reports the suppression stage of a word. Factor is only
// meaningful for StagePartial.
type BlockStatus struct {
	Stage  BlockStage
	Factor float64
}

// BlockLedger tracks, per personality, which words are suppressed and since
// when. It is owned exclusively by the Engine; all access happens under the
// Engine's lock.
type BlockLedger struct {
	blocked map[Personality]map[string]time.Time
}

// NewBlockLedger creates an empty ledger covering every personality.
func NewBlockLedger() *BlockLedger {
	l := &BlockLedger{blocked: make(map[Personality]map[string]time.Time)}
	for _, p := range personalities {
		l.blocked[p] = make(map[string]time.Time)
	}
	return l
}

// Status reports the suppression stage of word under the given personality.
//
// This is a combined read+maintenance operation, not a pure query: an entry
// whose full window has elapsed is evicted on the way out. The decay ladder:
//
//   - Aggressive, under 15 minutes: partial block, the word keeps 20% effect.
//   - Under 30 minutes (any personality): full block.
//   - Past 30 minutes: the entry expires and is removed.
func (l *BlockLedger) Status(word string, p Personality, now time.Time) BlockStatus {
	blockedAt, ok := l.blocked[p][word]
	if !ok {
		return BlockStatus{Stage: StageUnblocked}
	}

	elapsed := now.Sub(blockedAt)
	if p == PersonalityAggressive && elapsed < PartialBlockWindow {
		return BlockStatus{Stage: StagePartial, Factor: PartialBlockFactor}
	}
	if elapsed < FullBlockWindow {
		return BlockStatus{Stage: StageFull}
	}

	delete(l.blocked[p], word)
	return BlockStatus{Stage: StageUnblocked}
}

// Block inserts word under p with blockedAt = now, but only if the word is
// currently unblocked. Re-blocking a partially or fully blocked word is a
// no-op. Returns whether a new block was placed.
func (l *BlockLedger) Block(word string, p Personality, now time.Time) bool {
	if l.Status(word, p, now).Stage != StageUnblocked {
		return false
	}
	l.blocked[p][word] = now
	return true
}

// ActiveBlocks counts the entries currently held for a personality,
// including expired ones not yet lazily evicted.
func (l *BlockLedger) ActiveBlocks(p Personality) int {
	return len(l.blocked[p])
}
