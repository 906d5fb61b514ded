// SPDX-License-Identifier: MIT

// Package store persists checkpoint artifacts and sweep results in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a named artifact or sweep does not exist.
var ErrNotFound = errors.New("store: not found")

// Store manages the SQLite connection and schema.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dbPath.
// It enables WAL mode for concurrent readers during a sweep.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// One connection: the pragmas below stay in effect and concurrent runs
	// checkpoint through a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS artifacts (
		name TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sweeps (
		sweep_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		metric TEXT NOT NULL,
		direction TEXT NOT NULL,
		status TEXT NOT NULL,
		start_seed INTEGER NOT NULL,
		stop_seed INTEGER NOT NULL,
		mean REAL NOT NULL,
		std REAL NOT NULL,
		best_seed INTEGER NOT NULL,
		successful INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,

		-- Full result for exact reloads
		payload JSON NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		sweep_id TEXT NOT NULL REFERENCES sweeps(sweep_id) ON DELETE CASCADE,
		seed INTEGER NOT NULL,
		status TEXT NOT NULL,
		final_metric REAL NOT NULL,
		best_metric REAL NOT NULL,
		best_epoch INTEGER NOT NULL,
		early_stop_epoch INTEGER NOT NULL,
		epochs_run INTEGER NOT NULL,
		final_lr REAL NOT NULL,
		error TEXT,
		PRIMARY KEY (sweep_id, seed)
	);

	CREATE TABLE IF NOT EXISTS curves (
		sweep_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		epoch INTEGER NOT NULL,
		train REAL NOT NULL,
		eval REAL NOT NULL,
		lr REAL NOT NULL,
		PRIMARY KEY (sweep_id, seed, epoch),
		FOREIGN KEY (sweep_id, seed) REFERENCES runs(sweep_id, seed) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_sweeps_name ON sweeps(name);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// SaveArtifact upserts a named blob.
func (s *Store) SaveArtifact(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (name, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save artifact %q: %w", name, err)
	}

	return nil
}

// LoadArtifact returns a named blob or ErrNotFound.
func (s *Store) LoadArtifact(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM artifacts WHERE name = ?`, name).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("artifact %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load artifact %q: %w", name, err)
	}

	return data, nil
}

// ListArtifacts returns artifact names with the given prefix, sorted.
func (s *Store) ListArtifacts(ctx context.Context, prefix string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM artifacts WHERE substr(name, 1, ?) = ? ORDER BY name
	`, len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan artifact name: %w", err)
		}
		out = append(out, name)
	}

	return out, rows.Err()
}
