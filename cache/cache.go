// Package cache is the local persistent cache: a single-file sqlite database
// holding JSON blobs under well-known keys. It stands in for the browser
// localStorage the envelope contract was designed around, and is scoped to
// one user.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"finance-advisor/api/models"

	_ "modernc.org/sqlite"
)

// Well-known cache keys.
const (
	KeyState = "financial_state"
	KeyToken = "authToken"
	KeyUser  = "authUser"
)

type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS app_cache (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the raw blob for key. ok is false when the key is absent.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM app_cache WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Put overwrites the blob for key. The write completes before Put returns;
// the next Get sees it.
func (c *Cache) Put(key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := c.db.Exec(
		`INSERT INTO app_cache (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), now)
	return err
}

func (c *Cache) Delete(key string) error {
	_, err := c.db.Exec(`DELETE FROM app_cache WHERE key = ?`, key)
	return err
}

// SaveState serializes and stores the full envelope.
func (c *Cache) SaveState(state models.PersistedState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return c.Put(KeyState, raw)
}

// StateRaw returns the cached envelope bytes, if any. Callers pipe the bytes
// through migrate so records written by older builds still load.
func (c *Cache) StateRaw() ([]byte, bool, error) {
	return c.Get(KeyState)
}

// SaveSession stores the bearer token and user record from a successful
// signup/login.
func (c *Cache) SaveSession(token string, user models.AuthUser) error {
	if err := c.Put(KeyToken, []byte(token)); err != nil {
		return err
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal auth user: %w", err)
	}
	return c.Put(KeyUser, raw)
}

// Token returns the cached bearer token, empty when absent.
func (c *Cache) Token() (string, error) {
	raw, ok, err := c.Get(KeyToken)
	if err != nil || !ok {
		return "", err
	}
	return string(raw), nil
}

// User returns the cached authenticated-user record, nil when absent or
// unreadable. A corrupt record is treated the same as a missing one.
func (c *Cache) User() (*models.AuthUser, error) {
	raw, ok, err := c.Get(KeyUser)
	if err != nil || !ok {
		return nil, err
	}
	var user models.AuthUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, nil
	}
	return &user, nil
}

// ClearSession drops cached credentials, forcing re-authentication.
func (c *Cache) ClearSession() error {
	if err := c.Delete(KeyToken); err != nil {
		return err
	}
	return c.Delete(KeyUser)
}

// ClearAll wipes the whole cache on logout. The remote record is left
// untouched.
func (c *Cache) ClearAll() error {
	_, err := c.db.Exec(`DELETE FROM app_cache`)
	return err
}
