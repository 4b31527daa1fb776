package events

import (
	"sync"
	"testing"
	"time"
)

type capturingPersister struct {
	mu     sync.Mutex
	stored []GameEvent
}

func (p *capturingPersister) Append(event GameEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stored = append(p.stored, event)
	return nil
}

func (p *capturingPersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.stored)
}

func TestEventLogAppendAndReplay(t *testing.T) {
	// Setup
	log := NewEventLog(nil)

	// Act
	log.Append(GameEvent{ID: GenerateEventID(), Timestamp: time.Now(), Type: EventTypeGameStarted, ActorID: ActorAegis})
	log.Append(GameEvent{ID: GenerateEventID(), Timestamp: time.Now(), Type: EventTypeAttackResolved, ActorID: "user-1"})

	// Assert
	if log.Len() != 2 {
		t.Fatalf("Expected 2 events, got %d", log.Len())
	}
	history := log.Replay()
	if history[0].Type != EventTypeGameStarted || history[1].Type != EventTypeAttackResolved {
		t.Errorf("Replay order does not match append order")
	}
}

func TestEventLogSince(t *testing.T) {
	log := NewEventLog(nil)
	for i := 0; i < 5; i++ {
		log.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeTimerTick, ActorID: ActorSystem})
	}

	if got := log.Since(3); len(got) != 2 {
		t.Errorf("Expected 2 events since index 3, got %d", len(got))
	}
	if got := log.Since(5); got != nil {
		t.Errorf("Expected nil past the end, got %v", got)
	}
	if got := log.Since(0); len(got) != 5 {
		t.Errorf("Expected the full log from index 0, got %d", len(got))
	}
}

func TestEventLogGetByActor(t *testing.T) {
	log := NewEventLog(nil)
	log.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeAttackResolved, ActorID: "user-1"})
	log.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeDefended, ActorID: ActorAegis})
	log.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeCounterAttack, ActorID: ActorAegis})

	aegis := log.GetByActor(ActorAegis)
	if len(aegis) != 2 {
		t.Errorf("Expected 2 adversary events, got %d", len(aegis))
	}
}

func TestEventLogWritesThroughPersister(t *testing.T) {
	// Setup
	persister := &capturingPersister{}
	log := NewEventLog(persister)

	// Act
	log.Append(GameEvent{ID: GenerateEventID(), Type: EventTypeVictory, ActorID: "user-1"})

	// Assert: persistence is async, poll briefly
	deadline := time.Now().Add(time.Second)
	for persister.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if persister.count() != 1 {
		t.Fatalf("Expected the event to reach the persister, got %d", persister.count())
	}
	if persister.stored[0].Type != EventTypeVictory {
		t.Errorf("Persisted wrong event type: %s", persister.stored[0].Type)
	}
}

func TestGenerateEventIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := GenerateEventID()
		if id == "" {
			t.Fatalf("Generated empty event id")
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("Duplicate event id %s", id)
		}
		seen[id] = struct{}{}
	}
}
