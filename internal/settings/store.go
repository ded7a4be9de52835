// Package settings persists small string settings in the application's
// SQLite database.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"claudefinder/internal/binary"
)

const schema = `CREATE TABLE IF NOT EXISTS app_settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// busyTimeoutMillis lets concurrent writers wait for each other instead of
// failing with SQLITE_BUSY.
const busyTimeoutMillis = 5000

// Store is a key/value view over the app_settings table. Every operation
// opens its own short-lived connection, so a Store is safe for concurrent
// use and never holds the database open between calls.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Get returns binary.ErrKeyNotFound when the database, table or row does not
// exist. It never creates the database.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", binary.ErrKeyNotFound
		}
		return "", fmt.Errorf("stat settings database: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	ok, err := tableExists(ctx, db)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", binary.ErrKeyNotFound
	}

	var value string
	err = db.QueryRowContext(ctx, "SELECT value FROM app_settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", binary.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query setting %s: %w", key, err)
	}
	return value, nil
}

// Set creates the database, its directory and the table as needed and
// upserts the row.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	if _, err := db.ExecContext(ctx, "INSERT OR REPLACE INTO app_settings (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("store setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key. A missing database or table is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	ok, err := tableExists(ctx, db)
	if err != nil || !ok {
		return err
	}
	if _, err := db.ExecContext(ctx, "DELETE FROM app_settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// All returns every stored setting.
func (s *Store) All(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		return out, nil
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	ok, err := tableExists(ctx, db)
	if err != nil || !ok {
		return out, err
	}

	rows, err := db.QueryContext(ctx, "SELECT key, value FROM app_settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open settings database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMillis)); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure settings database: %w", err)
	}
	return db, nil
}

func tableExists(ctx context.Context, db *sql.DB) (bool, error) {
	var name string
	err := db.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'app_settings'").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect settings database: %w", err)
	}
	return true, nil
}

var _ binary.KeyValueStore = (*Store)(nil)
