// Package sqlite provides the public API for the SQLite registry hive.
// This package exposes the factory function for creating stores while
// keeping implementation details internal.
package sqlite

import (
	"github.com/teamcharls/netpbm-wic/internal/sqlite"
)

// Store is the SQLite-backed registry hive.
type Store = sqlite.Store

// Entry is one value read back from the hive.
type Entry = sqlite.Entry

// NewStore creates a new registry hive instance.
// The store is not attached; call Attach with a Config to open it.
//
// Example:
//
//	store := sqlite.NewStore()
//	err := store.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".netpbmwic-db",
//	})
//	defer store.Detach()
func NewStore() *Store {
	return sqlite.NewStore()
}
