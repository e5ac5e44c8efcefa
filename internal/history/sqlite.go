package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB implements Store on SQLite (modernc.org/sqlite driver, CGO-free).
// path is a filesystem location for the database file; use ":memory:" for
// an in-memory database.
type DB struct {
	db *sql.DB
}

// Open opens (and creates if needed) the history database and ensures its
// schema.
func Open(path string) (*DB, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, errors.New("empty history db path")
	}
	// SQLite does not create missing parent directories; on a fresh
	// install the per-user data dir does not exist yet.
	if p != ":memory:" {
		_ = os.MkdirAll(filepath.Dir(p), 0o750)
	}
	d, err := sql.Open("sqlite", p)
	if err != nil {
		return nil, err
	}
	// busy timeout helps with short concurrent locks
	_, _ = d.Exec("PRAGMA busy_timeout=3000;")
	s := &DB{db: d}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = d.Close()
		return nil, err
	}
	return s, nil
}

func (s *DB) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sidecar_events(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			role TEXT NOT NULL,
			kind TEXT NOT NULL,
			pid INTEGER NOT NULL,
			detail TEXT NOT NULL,
			occurred_at TIMESTAMP NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sidecar_events_role ON sidecar_events(role);`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

func (s *DB) Close() error { return s.db.Close() }

func (s *DB) Append(ctx context.Context, ev Event) error {
	occurred := ev.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sidecar_events(role, kind, pid, detail, occurred_at)
		VALUES(?, ?, ?, ?, ?);`,
		ev.Role, string(ev.Kind), ev.PID, ev.Detail, occurred.UTC())
	return err
}

// Recent returns up to limit events, most recent first.
func (s *DB) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, kind, pid, detail, occurred_at
		FROM sidecar_events
		ORDER BY id DESC
		LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := make([]Event, 0)
	for rows.Next() {
		var ev Event
		var kind string
		if err := rows.Scan(&ev.ID, &ev.Role, &kind, &ev.PID, &ev.Detail, &ev.OccurredAt); err != nil {
			return nil, err
		}
		ev.Kind = Kind(kind)
		out = append(out, ev)
	}
	return out, rows.Err()
}
