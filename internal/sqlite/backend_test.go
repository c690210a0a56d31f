package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// attachTemp returns a Store attached to a fresh temporary data directory.
func attachTemp(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	err := s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Detach() })
	return s
}

func TestStore_Attach(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "hive")

	s := NewStore()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}
	if err := s.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer s.Detach()

	dbPath := filepath.Join(dataDir, "registry.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("registry.db not created")
	}
	assert.Equal(t, dbPath, s.Path())

	if err := s.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestStore_AttachInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "dynamodb", DataDir: t.TempDir()}, types.ErrBackendUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			assert.ErrorIs(t, s.Attach(tt.config), tt.wantErr)
			assert.ErrorIs(t, s.SetString(`A`, "x", "y"), types.ErrStoreDetached)
		})
	}
}

func TestStore_Detach(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	if err := s.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := s.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	assert.ErrorIs(t, s.SetString(`A`, "x", "y"), types.ErrStoreDetached)
	assert.ErrorIs(t, s.SetUint32(`A`, "x", 1), types.ErrStoreDetached)
	assert.ErrorIs(t, s.DeleteTree(`A`), types.ErrStoreDetached)
	_, err := s.Entries("")
	assert.ErrorIs(t, err, types.ErrStoreDetached)
	_, err = s.KeyExists(`A`)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestStore_Reattach(t *testing.T) {
	config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

	s := NewStore()
	require.NoError(t, s.Attach(config))
	require.NoError(t, s.SetString(`SOFTWARE\Test`, "Name", "kept"))
	require.NoError(t, s.Detach())

	require.NoError(t, s.Attach(config))
	defer s.Detach()
	got, err := s.GetString(`SOFTWARE\Test`, "Name")
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}
