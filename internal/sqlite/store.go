package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// DBFileName is the SQLite database file created inside the data directory.
const DBFileName = "todos.db"

// Store implements types.Store on a local SQLite database.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
	caps   types.Capabilities
}

// Compile-time interface check.
var _ types.Store = (*Store)(nil)

// Open creates the data directory if needed, opens (or creates) the
// database, applies the schema, and probes the optional step column
// once. The resulting capability snapshot is fixed for the lifetime of
// the store.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DBFileName))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}

	return &Store{
		db:   db,
		caps: types.Capabilities{Step: probeStepColumn(db)},
	}, nil
}

// probeStepColumn attempts a minimal read of the optional step column.
// Success, including an empty result, means the column exists. Every
// failure folds into capability-absent; the probe never surfaces an
// error and runs exactly once per Open.
func probeStepColumn(db *sql.DB) bool {
	var step sql.NullString
	err := db.QueryRow("SELECT step FROM todos LIMIT 1").Scan(&step)
	return err == nil || errors.Is(err, sql.ErrNoRows)
}

// Capabilities returns the snapshot resolved at Open.
func (s *Store) Capabilities() types.Capabilities {
	return s.caps
}

// Close releases the database handle. Idempotent; operations after
// Close return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	return nil
}

// conn returns the database handle, or ErrStoreClosed after Close.
// The caller must hold s.mu (read or write lock).
func (s *Store) conn() (*sql.DB, error) {
	if s.closed || s.db == nil {
		return nil, types.ErrStoreClosed
	}
	return s.db, nil
}

// storageErr wraps a backing-store failure. Sentinels from pkg/types
// pass through untouched so absence never masquerades as failure.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrStoreClosed) {
		return err
	}
	return &types.StorageError{Op: op, Err: err}
}
