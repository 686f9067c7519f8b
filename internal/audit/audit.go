// Package audit records who changed what. Events live in the same database
// as the data they describe so a backup captures both together.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
)

// Event is one row of the audit trail.
type Event struct {
	ID      int64
	TS      time.Time
	Actor   string
	Type    string
	Payload string
}

// Logger appends events to the audit_events table. A nil Logger silently
// drops events, which lets callers wire auditing in without nil checks.
type Logger struct {
	db db.DBTX
}

func NewLogger(dbtx db.DBTX) *Logger {
	return &Logger{db: dbtx}
}

// Record appends one event. The payload is stored as JSON.
func (l *Logger) Record(ctx context.Context, actor, eventType string, payload any) error {
	if l == nil || l.db == nil {
		return nil
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling audit payload: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		"INSERT INTO audit_events (ts, actor, type, payload_json) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339Nano),
		actor,
		eventType,
		string(payloadJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first.
func (l *Logger) Recent(ctx context.Context, limit int) ([]Event, error) {
	if l == nil || l.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		"SELECT id, ts, actor, type, payload_json FROM audit_events ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Actor, &e.Type, &e.Payload); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339Nano, ts); parseErr == nil {
			e.TS = parsed
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
