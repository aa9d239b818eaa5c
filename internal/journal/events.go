package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Event is one journaled session event.
type Event struct {
	ID       int64
	At       time.Time
	Severity string
	Message  string
}

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) Append(ctx context.Context, at time.Time, severity, message string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events(at_ms, severity, message)
		VALUES (?, ?, ?)
	`, at.UnixMilli(), severity, message)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}

	return nil
}

// Recent returns the newest events first, at most limit of them.
func (r *EventRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, at_ms, severity, message
		FROM events
		ORDER BY at_ms DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			ev   Event
			atMs int64
		)
		if err := rows.Scan(&ev.ID, &atMs, &ev.Severity, &ev.Message); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.At = time.UnixMilli(atMs).UTC()
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return out, nil
}

// Prune removes events older than keep, bounding journal growth across
// long sessions.
func (r *EventRepo) Prune(ctx context.Context, keep time.Duration) error {
	cutoff := time.Now().Add(-keep).UnixMilli()
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE at_ms < ?`, cutoff); err != nil {
		return fmt.Errorf("prune events: %w", err)
	}

	return nil
}
