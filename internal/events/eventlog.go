// Package events provides the append-only event feed for the game.
// Everything the engine does — attacks, defenses, milestones, victories —
// lands here as an immutable record for broadcast and audit.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType defines the category of a game event.
type EventType string

const (
	EventTypeGameStarted      EventType = "GAME_STARTED"
	EventTypeTimerTick        EventType = "TIMER_TICK"
	EventTypeAttackResolved   EventType = "ATTACK_RESOLVED"
	EventTypeAttackBlocked    EventType = "ATTACK_BLOCKED"
	EventTypeAttackRejected   EventType = "ATTACK_REJECTED"
	EventTypeCounterAttack    EventType = "COUNTER_ATTACK"
	EventTypeWordResisted     EventType = "WORD_RESISTED"
	EventTypeDefended         EventType = "DEFENDED"
	EventTypePersonalityShift EventType = "PERSONALITY_SHIFT"
	EventTypeMilestoneReached EventType = "MILESTONE_REACHED"
	EventTypeVictory          EventType = "VICTORY"
	EventTypeAdversaryVictory EventType = "ADVERSARY_VICTORY"
)

// ActorAegis marks events originating from the autonomous adversary.
const ActorAegis = "AEGIS"

// ActorSystem marks events originating from the scheduler or bootstrap.
const ActorSystem = "SYSTEM"

// GameEvent represents an immutable record of something that happened in the game.
type GameEvent struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"` // Participant id, ActorAegis or ActorSystem
	Payload   interface{} `json:"payload"`  // Event-specific data
}

// EventPersister defines how an event is durably stored.
type EventPersister interface {
	Append(event GameEvent) error
}

// EventLog is the in-memory append-only log of game events.
// The websocket hub and the sqlite archive both feed off it.
type EventLog struct {
	mu        sync.RWMutex
	events    []GameEvent
	persister EventPersister
}

// NewEventLog creates a new event log with an optional persister.
func NewEventLog(persister EventPersister) *EventLog {
	return &EventLog{
		events:    make([]GameEvent, 0),
		persister: persister,
	}
}

// Append adds a new event to the log. Events are immutable once appended.
// Persister failures never surface to the caller: the in-memory append is
// the commit point, the archive is best-effort write-behind.
func (el *EventLog) Append(event GameEvent) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.events = append(el.events, event)

	if el.persister != nil {
		go func(e GameEvent) {
			_ = el.persister.Append(e)
		}(event)
	}
}

// Replay returns the full history of events.
func (el *EventLog) Replay() []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.events
}

// Since returns all events with index >= n, for incremental pollers.
func (el *EventLog) Since(n int) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()
	if n >= len(el.events) {
		return nil
	}
	return el.events[n:]
}

// Len reports the number of appended events.
func (el *EventLog) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.events)
}

// GetByActor returns all events performed by a specific actor.
func (el *EventLog) GetByActor(actorID string) []GameEvent {
	el.mu.RLock()
	defer el.mu.RUnlock()

	var result []GameEvent
	for _, e := range el.events {
		if e.ActorID == actorID {
			result = append(result, e)
		}
	}
	return result
}

// GenerateEventID creates a unique event identifier.
func GenerateEventID() string {
	return uuid.NewString()
}
