package storage

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *SQLiteEventRepository {
	t.Helper()
	db, err := InitSQLite(filepath.Join(t.TempDir(), "aegis_test.db"))
	if err != nil {
		t.Fatalf("InitSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteEventRepository(db)
}

func seedEvents(t *testing.T, repo *SQLiteEventRepository) {
	t.Helper()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	events := []StoredEvent{
		{ID: "e1", Timestamp: base, EventType: "GAME_STARTED", ActorID: "AEGIS", Payload: json.RawMessage(`{"timer":1000}`)},
		{ID: "e2", Timestamp: base.Add(time.Minute), EventType: "ATTACK_RESOLVED", ActorID: "user-1", Payload: json.RawMessage(`{"phrase":"alpha"}`)},
		{ID: "e3", Timestamp: base.Add(2 * time.Minute), EventType: "DEFENDED", ActorID: "AEGIS", Payload: json.RawMessage(`{"gain":7.5}`)},
		{ID: "e4", Timestamp: base.Add(3 * time.Minute), EventType: "ATTACK_RESOLVED", ActorID: "user-2", Payload: json.RawMessage(`{"phrase":"beta"}`)},
	}
	for _, e := range events {
		if err := repo.Append(context.Background(), e); err != nil {
			t.Fatalf("Append %s failed: %v", e.ID, err)
		}
	}
}

func TestSQLiteRepositoryRecent(t *testing.T) {
	repo := newTestRepo(t)
	seedEvents(t, repo)

	got, err := repo.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}

	// Newest two, returned oldest first
	if len(got) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(got))
	}
	if got[0].ID != "e3" || got[1].ID != "e4" {
		t.Errorf("Expected [e3 e4], got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestSQLiteRepositoryQueriesByActorAndType(t *testing.T) {
	repo := newTestRepo(t)
	seedEvents(t, repo)

	byActor, err := repo.GetByActorID(context.Background(), "AEGIS")
	if err != nil {
		t.Fatalf("GetByActorID failed: %v", err)
	}
	if len(byActor) != 2 {
		t.Errorf("Expected 2 adversary events, got %d", len(byActor))
	}

	byType, err := repo.GetByEventType(context.Background(), "ATTACK_RESOLVED")
	if err != nil {
		t.Fatalf("GetByEventType failed: %v", err)
	}
	if len(byType) != 2 {
		t.Errorf("Expected 2 resolved attacks, got %d", len(byType))
	}
	var payload struct {
		Phrase string `json:"phrase"`
	}
	if err := json.Unmarshal(byType[0].Payload, &payload); err != nil {
		t.Fatalf("Payload did not round-trip as JSON: %v", err)
	}
	if payload.Phrase != "alpha" {
		t.Errorf("Expected payload phrase alpha, got %q", payload.Phrase)
	}
}

func TestSQLiteRepositoryRejectsDuplicateIDs(t *testing.T) {
	repo := newTestRepo(t)
	e := StoredEvent{ID: "dup", Timestamp: time.Now(), EventType: "TIMER_TICK", ActorID: "SYSTEM", Payload: json.RawMessage(`{}`)}

	if err := repo.Append(context.Background(), e); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	if err := repo.Append(context.Background(), e); err == nil {
		t.Errorf("Expected duplicate primary key to be rejected")
	}
}
