package preferences

import (
	"TUI_playlist_viewer/internal/core/ports"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	PrefAccountName        = "accountName"
	PrefAccountsPermission = "accountsPermission"

	permissionGranted = "granted"
)

// Store é um armazenamento chave/valor privado do app, em SQLite.
type Store struct {
	db  *sql.DB
	log ports.LoggerPort
}

func Open(dbPath string, logger ports.LoggerPort) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("preferences: mkdir %s: %w", filepath.Dir(dbPath), err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("preferences: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("preferences: init schema: %w", err)
	}

	return &Store{db: db, log: logger}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get devolve ok=false quando a chave não existe.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("preferences: get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("preferences: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("preferences: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) AccountName() (string, bool) {
	name, ok, err := s.Get(PrefAccountName)
	if err != nil {
		s.log.Error("Failed to read saved account", err)
		return "", false
	}
	return name, ok && name != ""
}

func (s *Store) SetAccountName(name string) error {
	return s.Set(PrefAccountName, name)
}

func (s *Store) ClearAccountName() error {
	return s.Delete(PrefAccountName)
}

func (s *Store) HasAccountsPermission() bool {
	value, ok, err := s.Get(PrefAccountsPermission)
	if err != nil {
		s.log.Error("Failed to read accounts permission", err)
		return false
	}
	return ok && value == permissionGranted
}

func (s *Store) GrantAccountsPermission() error {
	return s.Set(PrefAccountsPermission, permissionGranted)
}

func (s *Store) RevokeAccountsPermission() error {
	return s.Delete(PrefAccountsPermission)
}
