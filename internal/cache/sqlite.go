package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/LeonardoBeccarini/symbiont/internal/model"
)

const (
	// DatabaseName and StoreName identify the local record.
	DatabaseName = "SymbiontDB"
	StoreName    = "farmData"
)

// SQLite is the local persistent cache.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database file. An empty path yields ErrUnavailable.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, ErrUnavailable
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create directory: %v", ErrUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	// a single connection keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, path: path}
	if err := s.initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS ` + StoreName + ` (
		id INTEGER PRIMARY KEY,
		yield REAL NOT NULL,
		risk REAL NOT NULL,
		water REAL NOT NULL,
		suggestions TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrUnavailable, StoreName, err)
	}
	return nil
}

func (s *SQLite) Name() string { return "sqlite" }

// Save upserts the snapshot. An older snapshot never overwrites a newer one,
// so concurrent fire-and-forget writes settle on the latest state.
func (s *SQLite) Save(ctx context.Context, snap model.FarmSnapshot) error {
	suggestions := snap.State.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("encode suggestions: %w", err)
	}
	const q = `
	INSERT INTO ` + StoreName + ` (id, yield, risk, water, suggestions, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		yield = excluded.yield,
		risk = excluded.risk,
		water = excluded.water,
		suggestions = excluded.suggestions,
		updated_at = excluded.updated_at
	WHERE excluded.updated_at >= ` + StoreName + `.updated_at`
	_, err = s.db.ExecContext(ctx, q,
		snap.ID, snap.State.Yield, snap.State.Risk, snap.State.Water, string(raw), snap.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("put %s/%d: %w", StoreName, snap.ID, err)
	}
	return nil
}

// Load returns the cached snapshot. ok is false when nothing was saved yet.
func (s *SQLite) Load(ctx context.Context) (snap model.FarmSnapshot, ok bool, err error) {
	const q = `SELECT id, yield, risk, water, suggestions, updated_at FROM ` + StoreName + ` WHERE id = ?`
	var (
		raw string
		ts  int64
	)
	row := s.db.QueryRowContext(ctx, q, model.SnapshotID)
	if err := row.Scan(&snap.ID, &snap.State.Yield, &snap.State.Risk, &snap.State.Water, &raw, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.FarmSnapshot{}, false, nil
		}
		return model.FarmSnapshot{}, false, fmt.Errorf("get %s/%d: %w", StoreName, model.SnapshotID, err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.State.Suggestions); err != nil {
		return model.FarmSnapshot{}, false, fmt.Errorf("decode suggestions: %w", err)
	}
	snap.Timestamp = time.Unix(0, ts).UTC()
	return snap, true, nil
}

// Ping checks the database is still reachable, used by /readyz.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Path() string { return s.path }
