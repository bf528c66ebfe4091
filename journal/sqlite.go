//go:build sqlite

package journal

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveDecision(ctx context.Context, d Decision) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO decisions (
			id, player, tick, kind, agent_id, target_x, target_y,
			score, path_cost, candidates, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Player, d.Tick, string(d.Kind), d.AgentID, d.Target.X, d.Target.Y,
		d.Score, d.PathCost, d.Candidates, d.CreatedAt.UnixNano())
	return err
}

func (s *SQLiteStore) ListDecisions(ctx context.Context, limit int) ([]Decision, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, player, tick, kind, agent_id, target_x, target_y,
			score, path_cost, candidates, created_at
		FROM decisions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var (
			d       Decision
			kind    string
			created int64
		)
		if err := rows.Scan(&d.ID, &d.Player, &d.Tick, &kind, &d.AgentID, &d.Target.X, &d.Target.Y,
			&d.Score, &d.PathCost, &d.Candidates, &created); err != nil {
			return nil, err
		}
		d.Kind = Kind(kind)
		d.CreatedAt = time.Unix(0, created).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS decisions (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			tick INTEGER NOT NULL,
			kind TEXT NOT NULL,
			agent_id INTEGER NOT NULL,
			target_x INTEGER NOT NULL,
			target_y INTEGER NOT NULL,
			score REAL NOT NULL,
			path_cost REAL NOT NULL,
			candidates INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS decisions_created_at ON decisions (created_at);
	`)
	return err
}
