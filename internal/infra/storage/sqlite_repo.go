package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StoredEvent is the archive's row shape. Payloads are kept as opaque JSON.
type StoredEvent struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	EventType string          `json:"event_type"`
	ActorID   string          `json:"actor_id"`
	Payload   json.RawMessage `json:"payload"`
}

// SQLiteEventRepository appends and queries archived events.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// Append inserts one event into the archive.
func (r *SQLiteEventRepository) Append(ctx context.Context, event StoredEvent) error {
	query := `
		INSERT INTO events (id, timestamp, event_type, actor_id, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Timestamp, event.EventType, event.ActorID, string(event.Payload),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]StoredEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []StoredEvent
	for rows.Next() {
		var e StoredEvent
		var payloadStr string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.EventType, &e.ActorID, &payloadStr); err != nil {
			return nil, err
		}
		e.Payload = json.RawMessage(payloadStr)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Recent returns the newest events, oldest first.
func (r *SQLiteEventRepository) Recent(ctx context.Context, limit int) ([]StoredEvent, error) {
	query := `
		SELECT id, timestamp, event_type, actor_id, payload FROM (
			SELECT id, timestamp, event_type, actor_id, payload
			FROM events ORDER BY timestamp DESC LIMIT ?
		) ORDER BY timestamp ASC
	`
	return r.getMany(ctx, query, limit)
}

// GetByActorID returns all archived events for one actor, oldest first.
func (r *SQLiteEventRepository) GetByActorID(ctx context.Context, actorID string) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, event_type, actor_id, payload FROM events WHERE actor_id = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, actorID)
}

// GetByEventType returns all archived events of one type, oldest first.
func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, eventType string) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, event_type, actor_id, payload FROM events WHERE event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, eventType)
}
