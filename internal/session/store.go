// Package session persists the signed-in runner's Session snapshot and the
// theme preference across restarts. It is the only client-owned durable
// state; everything else is a transient read cache refilled from the API.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/albqueque12/FitIA/internal/models"
)

// Storage keys, fixed so old installs keep their data.
const (
	sessionKey = "fitai_user"
	themeKey   = "fitai_theme"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Store struct {
	db *sql.DB
}

// Open creates (or opens) the local store at dir/fitia.db.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "fitia.db"))
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS local_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating local_state table: %w", err)
	}

	return &Store{db: db}, nil
}

// Load returns the persisted session, or (nil, nil) when there is none.
// A corrupt stored value is treated as absent so the app falls back to the
// registration flow instead of failing to start.
func (s *Store) Load() (*models.Session, error) {
	raw, found, err := s.get(sessionKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		log.Printf("session store: discarding corrupt session: %v", err)
		return nil, nil
	}
	return &sess, nil
}

// Save replaces the persisted session wholesale. A single-statement upsert
// keeps partial writes from ever being visible.
func (s *Store) Save(sess *models.Session) error {
	if sess == nil {
		return errors.New("session store: nil session")
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.set(sessionKey, string(raw))
}

// Clear removes the persisted session.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM local_state WHERE key = ?`, sessionKey)
	return err
}

// Theme returns the persisted display preference, defaulting to light.
func (s *Store) Theme() string {
	raw, found, err := s.get(themeKey)
	if err != nil || !found {
		return ThemeLight
	}
	if raw != ThemeLight && raw != ThemeDark {
		return ThemeLight
	}
	return raw
}

func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("session store: unknown theme %q", theme)
	}
	return s.set(themeKey, theme)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO local_state (key, value) VALUES (?, ?)`,
		key, value,
	)
	return err
}
