package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teamcharls/netpbm-wic/pkg/types"
)

// Entry is one named value under a registry key. Name is empty for the
// key's default value.
type Entry struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// cleanPath trims separators; registry paths never start or end with one.
func cleanPath(path string) (string, error) {
	p := strings.Trim(path, `\`)
	if p == "" {
		return "", types.ErrInvalidArgument
	}
	return p, nil
}

// SetString stores a string value, creating the key and its parents.
func (s *Store) SetString(path, name, value string) error {
	return s.setValue(path, name, KindString, value)
}

// SetUint32 stores a DWORD value, creating the key and its parents.
func (s *Store) SetUint32(path, name string, value uint32) error {
	return s.setValue(path, name, KindDWORD, strconv.FormatUint(uint64(value), 10))
}

func (s *Store) setValue(path, name, kind, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	p, err := cleanPath(path)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ensureKey(tx, p, now); err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO registry_values (path, name, kind, value, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (path, name) DO UPDATE SET kind = excluded.kind, value = excluded.value, updated_at = excluded.updated_at`,
		p, name, kind, value, now,
	)
	if err != nil {
		return fmt.Errorf("setting %s\\%s: %w", p, name, err)
	}

	return tx.Commit()
}

// ensureKey creates path and every ancestor key.
func ensureKey(tx *sql.Tx, path, now string) error {
	parts := strings.Split(path, `\`)
	for i := range parts {
		key := strings.Join(parts[:i+1], `\`)
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO registry_keys (path, created_at) VALUES (?, ?)",
			key, now,
		); err != nil {
			return fmt.Errorf("creating key %s: %w", key, err)
		}
	}
	return nil
}

// DeleteTree removes path, its subkeys and all their values.
// Returns an error wrapping ErrKeyNotFound if path does not exist.
func (s *Store) DeleteTree(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return err
	}
	p, err := cleanPath(path)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var one int
	err = tx.QueryRow("SELECT 1 FROM registry_keys WHERE path = ?", p).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", p, types.ErrKeyNotFound)
	}
	if err != nil {
		return fmt.Errorf("checking key %s: %w", p, err)
	}

	pattern := likeEscape(p) + `\%`
	if _, err := tx.Exec(
		`DELETE FROM registry_values WHERE path = ? OR path LIKE ? ESCAPE '!'`, p, pattern,
	); err != nil {
		return fmt.Errorf("deleting values of %s: %w", p, err)
	}
	if _, err := tx.Exec(
		`DELETE FROM registry_keys WHERE path = ? OR path LIKE ? ESCAPE '!'`, p, pattern,
	); err != nil {
		return fmt.Errorf("deleting key %s: %w", p, err)
	}

	return tx.Commit()
}

// likeEscape escapes LIKE wildcards with '!'.
func likeEscape(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// KeyExists reports whether path exists.
func (s *Store) KeyExists(path string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return false, err
	}
	p, err := cleanPath(path)
	if err != nil {
		return false, err
	}

	var one int
	err = db.QueryRow("SELECT 1 FROM registry_keys WHERE path = ?", p).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetString returns a string value.
// Returns ErrKeyNotFound if the value is missing and ErrValueType if it is
// not a string.
func (s *Store) GetString(path, name string) (string, error) {
	e, err := s.getEntry(path, name)
	if err != nil {
		return "", err
	}
	if e.Kind != KindString {
		return "", types.ErrValueType
	}
	return e.Value, nil
}

// GetUint32 returns a DWORD value.
// Returns ErrKeyNotFound if the value is missing and ErrValueType if it is
// not a DWORD.
func (s *Store) GetUint32(path, name string) (uint32, error) {
	e, err := s.getEntry(path, name)
	if err != nil {
		return 0, err
	}
	if e.Kind != KindDWORD {
		return 0, types.ErrValueType
	}
	n, err := strconv.ParseUint(e.Value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parsing %s\\%s: %w", e.Path, e.Name, err)
	}
	return uint32(n), nil
}

func (s *Store) getEntry(path, name string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return Entry{}, err
	}
	p, err := cleanPath(path)
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	err = db.QueryRow(
		"SELECT path, name, kind, value FROM registry_values WHERE path = ? AND name = ?",
		p, name,
	).Scan(&e.Path, &e.Name, &e.Kind, &e.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s\\%s: %w", p, name, types.ErrKeyNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("getting %s\\%s: %w", p, name, err)
	}
	return e, nil
}

// Entries returns every value at or below prefix, ordered by path then
// name. An empty prefix lists the whole hive.
func (s *Store) Entries(prefix string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	query := "SELECT path, name, kind, value FROM registry_values"
	var args []any
	if p := strings.Trim(prefix, `\`); p != "" {
		query += ` WHERE path = ? OR path LIKE ? ESCAPE '!'`
		args = append(args, p, likeEscape(p)+`\%`)
	}
	query += " ORDER BY path, name"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Name, &e.Kind, &e.Value); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
