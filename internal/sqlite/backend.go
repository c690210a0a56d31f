// Package sqlite implements the persistent registry hive that server
// registration writes to, on top of SQLite.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/teamcharls/netpbm-wic/internal/paths"
	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// Store is a registry hive kept in a SQLite database. It implements
// registration.Store. A Store is unusable until Attach succeeds.
type Store struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
}

// NewStore creates a detached Store.
func NewStore() *Store {
	return &Store{}
}

// Attach opens (creating if needed) the hive in config.DataDir.
// Returns ErrAlreadyAttached if already attached.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := paths.HiveFile(dataDir)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return err
	}
	// One connection keeps the foreign_keys pragma and serializes writers.
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	s.db = db
	s.config = config
	s.attached = true
	return nil
}

// Detach closes the database. Detach is idempotent. After Detach every
// operation returns ErrStoreDetached.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}

	s.attached = false
	return nil
}

// Path returns the database file of the attached hive.
func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dataDir := s.config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	return paths.HiveFile(dataDir)
}

// conn returns the open database or ErrStoreDetached. The caller must
// hold s.mu.
func (s *Store) conn() (*sql.DB, error) {
	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return s.db, nil
}
