package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/rentalert/rentalert-go/internal/types"
)

// SQLiteStore persists the profile snapshot in a single-row sqlite
// table. Good enough for the single-active-session model; there is
// nothing to key by.
type SQLiteStore struct {
	db *sql.DB
}

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS profile_snapshot (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	payload TEXT NOT NULL,
	fetched_at INTEGER NOT NULL
)`

// OpenSnapshotStore opens (creating if needed) the snapshot database at
// path. Use ":memory:" for tests.
func OpenSnapshotStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(snapshotSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() (*types.UserProfile, time.Time, error) {
	var payload string
	var fetchedAt int64
	err := s.db.QueryRow(`SELECT payload, fetched_at FROM profile_snapshot WHERE id = 1`).Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot: %w", err)
	}
	var p types.UserProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return &p, time.UnixMilli(fetchedAt), nil
}

func (s *SQLiteStore) Save(p *types.UserProfile, fetchedAt time.Time) error {
	if p == nil {
		return s.Clear()
	}
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO profile_snapshot (id, payload, fetched_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		string(payload), fetchedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM profile_snapshot WHERE id = 1`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
