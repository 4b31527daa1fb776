// Package game contains the Aegis Protocol game engine: the countdown timer,
// the adversary, keyword suppression, and milestone rewards.
//
// ARCHITECTURAL RULE: two independent triggers mutate one shared state —
// attack commands and the scheduler tick. Every mutating operation runs as
// one atomic unit behind the Engine's single lock.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/aegisprotocol/aegis-server/internal/events"
	"github.com/aegisprotocol/aegis-server/internal/platform/logger"
	"github.com/aegisprotocol/aegis-server/internal/platform/metrics"
)

// Engine owns the whole game state and serializes all access to it.
type Engine struct {
	mu sync.Mutex

	settings   Settings
	state      gameState
	adversary  *Adversary
	ledger     *BlockLedger
	activity   *ActivityLog
	milestones *milestoneTracker
	rng        *rand.Rand
	tickCount  int64

	eventLog *events.EventLog
	logger   *logger.Logger

	done     chan struct{}
	doneOnce sync.Once
}

// NewEngine wires up one game instance. The rand source must be dedicated to
// this engine; it is only ever used under the engine lock.
func NewEngine(settings Settings, eventLog *events.EventLog, log *logger.Logger, rng *rand.Rand) *Engine {
	e := &Engine{
		settings: settings,
		state: gameState{
			timer:    settings.StartTimer,
			maxTimer: settings.MaxTimer,
		},
		adversary:  NewAdversary(RandomPersonality(rng), rng),
		ledger:     NewBlockLedger(),
		activity:   NewActivityLog(),
		milestones: newMilestoneTracker(settings.Milestones, settings.StartTimer),
		rng:        rng,
		eventLog:   eventLog,
		logger:     log,
		done:       make(chan struct{}),
	}
	return e
}

// Start announces the fresh game. It does not spawn the scheduler; the
// Scheduler drives Tick from outside.
func (e *Engine) Start(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info(fmt.Sprintf("Aegis Protocol online. Personality: %s, timer at %.1f/%.1f",
		e.adversary.Personality(), e.state.timer, e.state.maxTimer))

	e.append(now, events.EventTypeGameStarted, events.ActorAegis, events.GameStartedPayload{
		Personality: string(e.adversary.Personality()),
		Timer:       e.state.timer,
		MaxTimer:    e.state.maxTimer,
	})
}

// Done is closed once the game reaches a terminal state. The scheduler and
// any external drivers stop on it.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Snapshot returns a read-only copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Timer:         e.state.timer,
		MaxTimer:      e.state.maxTimer,
		Personality:   e.adversary.Personality(),
		MilestonePool: e.state.milestonePool,
		Terminal:      e.state.terminal,
		TickCount:     e.tickCount,
	}
}

type wordEffect struct {
	word   string
	factor float64
}

// SubmitAttack scores one attack phrase and applies its full effect as a
// single atomic unit. It returns a plain data record; formatting is the
// command layer's job.
func (e *Engine) SubmitAttack(participantID, phrase string, now time.Time) AttackOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.terminal != TerminalNone {
		metrics.Get().RecordAttack(string(AttackRejected))
		e.append(now, events.EventTypeAttackRejected, participantID, events.AttackRejectedPayload{
			Phrase: phrase,
			Reason: string(e.state.terminal),
		})
		return AttackOutcome{Kind: AttackRejected, ParticipantID: participantID, Phrase: phrase, Timer: e.state.timer}
	}

	personality := e.adversary.Personality()
	words := strings.Fields(strings.ToLower(phrase))

	// Score every word in order. A fully blocked word aborts the whole
	// attack before any state mutation; ledger eviction is the only side
	// effect allowed to happen on this path.
	var (
		total    float64
		recorded []wordEffect
	)
	for _, word := range words {
		status := e.ledger.Status(word, personality, now)
		switch status.Stage {
		case StageFull:
			metrics.Get().RecordAttack(string(AttackFullyBlocked))
			e.append(now, events.EventTypeAttackBlocked, participantID, events.AttackBlockedPayload{
				Phrase: phrase,
				Word:   word,
			})
			return AttackOutcome{
				Kind:          AttackFullyBlocked,
				ParticipantID: participantID,
				Phrase:        phrase,
				BlockedWord:   word,
				Timer:         e.state.timer,
			}
		case StagePartial:
			contribution := 1.0 * status.Factor
			total += contribution
			recorded = append(recorded, wordEffect{word: word, factor: contribution})
		default:
			total += FullEffectReduction
			recorded = append(recorded, wordEffect{word: word, factor: FullEffectReduction})
		}
	}

	distinct := make(map[string]struct{}, len(recorded))
	for _, we := range recorded {
		distinct[we.word] = struct{}{}
	}
	bonus := float64(len(distinct))
	total += bonus

	// Commit the effect.
	e.state.timer -= total
	reward := total * e.settings.RewardMultiplier
	contribution := total * PoolCut
	e.state.milestonePool += contribution
	e.activity.Record(participantID, now)

	if e.state.timer <= 0 {
		e.state.timer = 0
		e.markTerminal(TerminalPlayersWon)
		metrics.Get().RecordAttack(string(AttackVictory))
		e.append(now, events.EventTypeVictory, participantID, events.VictoryPayload{
			ParticipantID: participantID,
			Phrase:        phrase,
			Timer:         0,
		})
		return AttackOutcome{
			Kind:             AttackVictory,
			ParticipantID:    participantID,
			Phrase:           phrase,
			TotalReduction:   total,
			UniquenessBonus:  bonus,
			Timer:            0,
			IndividualReward: reward,
			PoolContribution: contribution,
		}
	}

	outcome := AttackOutcome{
		Kind:             AttackResolved,
		ParticipantID:    participantID,
		Phrase:           phrase,
		TotalReduction:   total,
		UniquenessBonus:  bonus,
		Timer:            e.state.timer,
		IndividualReward: reward,
		PoolContribution: contribution,
	}
	metrics.Get().RecordAttack(string(AttackResolved))
	e.append(now, events.EventTypeAttackResolved, participantID, events.AttackResolvedPayload{
		Phrase:           phrase,
		TotalReduction:   total,
		UniquenessBonus:  bonus,
		Timer:            e.state.timer,
		IndividualReward: reward,
		PoolContribution: contribution,
	})

	// Counter-attack check over the trailing minute, this attack included.
	attacks, attackers := e.activity.RecentAttacks(now)
	if attackers >= CounterAttackerLimit || attacks >= CounterAttackLimit {
		gain := e.adversary.CounterGain()
		e.state.timer += gain
		e.state.clampTimer()
		e.activity.ResetRecentWindow()
		outcome.Timer = e.state.timer
		outcome.CounterAttack = &CounterAttackReport{
			Personality: personality,
			Gain:        gain,
			Timer:       e.state.timer,
		}
		metrics.Get().RecordCounterAttack()
		e.append(now, events.EventTypeCounterAttack, events.ActorAegis, events.CounterAttackPayload{
			Personality: string(personality),
			Gain:        gain,
			Timer:       e.state.timer,
		})
	}

	// Blocking trigger: repetition inside this single message only. The
	// first fully effective word to reach the personality's limit gets
	// suppressed; spam across messages is the counter-attack's problem.
	limit := RepeatLimit(personality)
	counts := make(map[string]int)
	for _, we := range recorded {
		if we.factor < FullEffectReduction {
			continue
		}
		counts[we.word]++
		if counts[we.word] >= limit {
			if e.ledger.Block(we.word, personality, now) {
				outcome.ResistedWord = we.word
				metrics.Get().RecordWordResisted()
				e.append(now, events.EventTypeWordResisted, events.ActorAegis, events.WordResistedPayload{
					Word:        we.word,
					Personality: string(personality),
				})
			}
			break
		}
	}

	return outcome
}

// Tick runs one scheduler cycle: terminal detection, decay, a probabilistic
// defense, a personality-switch roll, and the milestone check. One atomic
// unit under the engine lock.
func (e *Engine) Tick(now time.Time) TickOutcome {
	started := time.Now()
	defer func() {
		metrics.Get().RecordTick(time.Since(started))
	}()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.terminal != TerminalNone {
		return TickOutcome{TickNumber: e.tickCount, Timer: e.state.timer, Terminal: e.state.terminal}
	}

	// Terminal detection runs on the pre-decay value: a previous cycle may
	// have pushed the timer to either bound.
	if e.state.timer >= e.state.maxTimer {
		e.markTerminal(TerminalAdversaryWon)
		e.append(now, events.EventTypeAdversaryVictory, events.ActorAegis, events.AdversaryVictoryPayload{
			MaxTimer: e.state.maxTimer,
		})
		return TickOutcome{TickNumber: e.tickCount, Timer: e.state.timer, Terminal: TerminalAdversaryWon}
	}
	if e.state.timer <= 0 {
		e.markTerminal(TerminalPlayersWon)
		e.append(now, events.EventTypeVictory, events.ActorSystem, events.VictoryPayload{Timer: 0})
		return TickOutcome{TickNumber: e.tickCount, Timer: 0, Terminal: TerminalPlayersWon}
	}

	e.tickCount++
	preTick := e.state.timer

	// Natural decay uses the nominal interval, never wall-clock elapsed
	// time: a stalled process under-decays instead of over-decaying.
	decay := e.settings.DecayRate * e.settings.TickInterval.Seconds()
	e.state.timer -= decay
	if e.state.timer < 0 {
		e.state.timer = 0
	}

	out := TickOutcome{TickNumber: e.tickCount, Decay: decay}

	if e.rng.Float64() < DefendChance {
		gain := e.adversary.DefendGain(e.state.timer, e.state.maxTimer)
		e.state.timer += gain
		e.state.clampTimer()
		out.Defense = &DefenseReport{
			Personality: e.adversary.Personality(),
			Gain:        gain,
			Timer:       e.state.timer,
		}
		e.append(now, events.EventTypeDefended, events.ActorAegis, events.DefendedPayload{
			Personality: string(e.adversary.Personality()),
			Gain:        gain,
			Timer:       e.state.timer,
		})
	}

	if previous, changed := e.adversary.MaybeSwitchPersonality(e.state.timer, e.state.maxTimer); changed {
		out.Shift = &PersonalityShiftReport{Previous: previous, Current: e.adversary.Personality()}
		e.append(now, events.EventTypePersonalityShift, events.ActorAegis, events.PersonalityShiftPayload{
			Previous: string(previous),
			Current:  string(e.adversary.Personality()),
		})
	}

	postTick := e.state.timer
	if threshold, ok := e.milestones.crossed(postTick); ok {
		milestone := distributePool(threshold, e.state.milestonePool, e.activity, now)
		e.state.milestonePool = 0
		e.milestones.advance(preTick, postTick, true)
		out.Milestone = &milestone
		metrics.Get().RecordMilestone()
		e.append(now, events.EventTypeMilestoneReached, events.ActorSystem, milestonePayload(milestone))
	} else {
		e.milestones.advance(preTick, postTick, false)
	}

	out.Timer = postTick
	e.append(now, events.EventTypeTimerTick, events.ActorSystem, events.TimerTickPayload{
		TickNumber: e.tickCount,
		Timer:      postTick,
		Decay:      decay,
	})
	return out
}

// markTerminal flips the game into a terminal state exactly once and
// releases everyone waiting on Done.
func (e *Engine) markTerminal(t TerminalState) {
	e.state.terminal = t
	e.doneOnce.Do(func() {
		close(e.done)
	})
	e.logger.Warn("Game over: " + string(t))
}

// append writes an event to the log. Emission must never roll back or
// duplicate an already committed state change, so errors stop here.
func (e *Engine) append(now time.Time, t events.EventType, actorID string, payload interface{}) {
	e.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: now,
		Type:      t,
		ActorID:   actorID,
		Payload:   payload,
	})
}

func milestonePayload(m MilestoneOutcome) events.MilestoneReachedPayload {
	p := events.MilestoneReachedPayload{
		Threshold: m.Threshold,
		Outcome:   string(m.Result),
		Pool:      m.Pool,
	}
	for _, r := range m.Rewards {
		p.Rewards = append(p.Rewards, events.MilestoneReward{
			ParticipantID: r.ParticipantID,
			Amount:        r.Amount,
		})
	}
	return p
}
