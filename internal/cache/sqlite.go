// Package cache provides SQLite snapshot storage. The last fetched schedule
// payload is kept per event so the grid can render immediately on startup and
// the CLI can list events offline; the backend stays the source of truth.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/stagehandapp/stagehand/internal/event"
)

// ErrNoSnapshot indicates no snapshot has been stored for the event yet.
var ErrNoSnapshot = errors.New("no snapshot for event")

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

// Open creates the snapshot store at path and runs migrations. Parent
// directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutSchedule stores the raw schedule payload for an event, replacing any
// previous snapshot.
func (s *Store) PutSchedule(ctx context.Context, eventID string, payload []byte) error {
	query := `
		INSERT INTO schedule_snapshots (event_id, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(event_id) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at
	`
	_, err := s.db.ExecContext(ctx, query, eventID, payload, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("storing snapshot: %w", err)
	}
	return nil
}

// GetSchedule returns the stored payload for an event and when it was
// fetched. Returns ErrNoSnapshot when none exists.
func (s *Store) GetSchedule(ctx context.Context, eventID string) ([]byte, time.Time, error) {
	var (
		payload   []byte
		fetchedAt string
	)
	query := `SELECT payload, fetched_at FROM schedule_snapshots WHERE event_id = ?`
	err := s.db.QueryRowContext(ctx, query, eventID).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("loading snapshot: %w", err)
	}

	at, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}
	return payload, at, nil
}

// DeleteSchedule drops the snapshot for an event. Called when a failed
// mutation leaves the local state untrustworthy.
func (s *Store) DeleteSchedule(ctx context.Context, eventID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM schedule_snapshots WHERE event_id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

// PutEvents replaces the cached event listing.
func (s *Store) PutEvents(ctx context.Context, events []event.Event) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("clearing events: %w", err)
	}

	query := `INSERT INTO events (id, name, event_code, date, description) VALUES (?, ?, ?, ?, ?)`
	for _, ev := range events {
		if _, err := tx.ExecContext(ctx, query, ev.ID, ev.Name, ev.EventCode, ev.Date, ev.Description); err != nil {
			return fmt.Errorf("inserting event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events: %w", err)
	}
	return nil
}

// ListEvents returns the cached event listing.
func (s *Store) ListEvents(ctx context.Context) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, event_code, date, description FROM events ORDER BY date, name`)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []event.Event
	for rows.Next() {
		var ev event.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.EventCode, &ev.Date, &ev.Description); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}
	return events, nil
}
