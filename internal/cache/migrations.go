package cache

import "fmt"

// migrate runs database migrations.
func (s *Store) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS schedule_snapshots (
			event_id   TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			fetched_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS events (
			id          TEXT PRIMARY KEY,
			name        TEXT,
			event_code  TEXT,
			date        TEXT,
			description TEXT
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating snapshot tables: %w", err)
	}

	return nil
}
