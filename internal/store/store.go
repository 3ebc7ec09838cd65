// Package store implements both the Item Store and the Sync-State Store
// over a single SQLite database file, using modernc.org/sqlite (pure Go,
// no cgo) and pressly/goose for schema migrations — the same stack and
// shape the teacher repo's own local state database uses.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Store is the combined Item Store + Sync-State Store. All of this core's
// local persistence — note/folder/tag/resource records, sync-state dirty
// tracking, deletion tombstones, and settings — lives behind this one type.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates or opens the SQLite database at path, applying any pending
// migrations before returning.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	if err := setPragmas(ctx, db); err != nil {
		db.Close()

		return nil, err
	}

	if err := runMigrations(ctx, db, logger); err != nil {
		db.Close()

		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// setPragmas applies the WAL/durability/foreign-key settings this core
// needs: write-ahead logging for concurrent-enough reads during a sync
// run, FULL durability since local note content must survive a crash,
// foreign keys enforced, and a bounded WAL checkpoint size.
func setPragmas(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_size_limit = 67108864",
	}

	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("store: setting pragma %q: %w", s, err)
		}
	}

	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: closing database: %w", err)
	}

	return nil
}

// DB exposes the raw handle for callers that need a read-only query this
// package doesn't wrap.
func (s *Store) DB() *sql.DB {
	return s.db
}
