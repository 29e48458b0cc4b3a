package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	KeyTheme         = "theme"
	KeyDeveloperMode = "developerMode"
)

// OpenPrefsDB opens (creating if needed) the preferences database at path.
func OpenPrefsDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS prefs (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

// GetPref returns the stored value for key and whether it exists.
func GetPref(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SetPref stores value under key, overwriting any previous value.
func SetPref(db *sql.DB, key, value string, nowUnix int64) error {
	_, err := db.Exec(
		`INSERT INTO prefs(key, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		nowUnix,
	)
	return err
}

// Store adapts the prefs table to the two flags the client persists. It
// satisfies chat.Prefs.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Open opens the database at path and wraps it in a Store.
func Open(path string) (*Store, error) {
	db, err := OpenPrefsDB(path)
	if err != nil {
		return nil, fmt.Errorf("opening preferences %s: %w", path, err)
	}
	return NewStore(db), nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Theme returns the stored theme, defaulting to "light".
func (s *Store) Theme() (string, error) {
	v, ok, err := GetPref(s.DB, KeyTheme)
	if err != nil {
		return "light", err
	}
	if !ok || (v != "light" && v != "dark") {
		return "light", nil
	}
	return v, nil
}

func (s *Store) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("unknown theme %q", theme)
	}
	return SetPref(s.DB, KeyTheme, theme, time.Now().Unix())
}

// DeveloperMode is true only when the stored flag is exactly "true".
func (s *Store) DeveloperMode() (bool, error) {
	v, _, err := GetPref(s.DB, KeyDeveloperMode)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

func (s *Store) SetDeveloperMode(enabled bool) error {
	value := "false"
	if enabled {
		value = "true"
	}
	return SetPref(s.DB, KeyDeveloperMode, value, time.Now().Unix())
}
