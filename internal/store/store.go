package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is the durable key-value collaborator shared by every subsystem:
// string keys mapped to JSON values, persisted in a local SQLite file so the
// data survives process restarts. Each key carries a version counter so
// writers sharing the file across processes can use compare-and-swap instead
// of last-write-wins.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the store at path and ensures the schema exists.
// Use ":memory:" for a throwaway store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	// SQLite serializes writers per connection; a single connection keeps
	// in-memory stores coherent as well.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := s.db.Exec(query)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get unmarshals the value stored under key into out. It reports false when
// the key is absent. A value that fails to parse is discarded and treated as
// absent; corrupt entries are never fatal.
func (s *Store) Get(key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Unreadable persisted data is recovered by dropping the entry.
		_ = s.Delete(key)
		return false, nil
	}
	return true, nil
}

// GetVersioned behaves like Get but also returns the key's current version
// for a later compare-and-swap write. Absent keys have version 0.
func (s *Store) GetVersioned(key string, out any) (int64, bool, error) {
	var (
		raw     string
		version int64
	)
	err := s.db.QueryRow(`SELECT value, version FROM kv WHERE key = ?`, key).Scan(&raw, &version)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %q: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		_ = s.Delete(key)
		return 0, false, nil
	}
	return version, true, nil
}

// Put marshals value as JSON and writes it under key, overwriting any
// previous value and bumping the version.
func (s *Store) Put(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv.version + 1,
			updated_at = CURRENT_TIMESTAMP`,
		key, string(raw))
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// PutCAS writes value under key only if the key's version still equals
// expected (0 meaning the key must not exist yet). It reports whether the
// write was applied; a false return means another writer got there first.
func (s *Store) PutCAS(key string, value any, expected int64) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("marshal %q: %w", key, err)
	}

	if expected == 0 {
		res, err := s.db.Exec(`
			INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, 1, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO NOTHING`,
			key, string(raw))
		if err != nil {
			return false, fmt.Errorf("put %q: %w", key, err)
		}
		n, _ := res.RowsAffected()
		return n > 0, nil
	}

	res, err := s.db.Exec(`
		UPDATE kv SET value = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP
		WHERE key = ? AND version = ?`,
		string(raw), key, expected)
	if err != nil {
		return false, fmt.Errorf("put %q: %w", key, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Delete removes key from the store. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// PutRaw stores an already-serialized value. Used by tests to plant corrupt
// entries and by tooling that round-trips opaque payloads.
func (s *Store) PutRaw(key, raw string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, version, updated_at) VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv.version + 1,
			updated_at = CURRENT_TIMESTAMP`,
		key, raw)
	return err
}
