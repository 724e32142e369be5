// Package cache is a sqlite-backed TTL cache for external API responses.
// Keys are caller-chosen strings, values opaque JSON blobs. Expired rows are
// treated as misses and purged lazily.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache handles response storage
type Cache struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time // overridable in tests
}

// New opens (or creates) the cache database at path. Use ":memory:" for an
// ephemeral cache.
func New(path string, ttl time.Duration) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db, ttl: ttl, now: time.Now}, nil
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS responses (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_responses_expiry ON responses(expires_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// Close closes the database connection
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached value for key, or ok=false on a miss or an expired
// entry.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	row := c.db.QueryRow(`SELECT value, expires_at FROM responses WHERE key = ?`, key)

	var value []byte
	var expiresAt int64
	err := row.Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("scanning cache entry: %w", err)
	}

	if c.now().Unix() >= expiresAt {
		_, _ = c.db.Exec(`DELETE FROM responses WHERE key = ?`, key)
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores value under key with the cache's TTL, replacing any previous
// entry.
func (c *Cache) Set(key string, value []byte) error {
	expiresAt := c.now().Add(c.ttl).Unix()
	_, err := c.db.Exec(`
		INSERT INTO responses (key, value, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("storing cache entry: %w", err)
	}
	return nil
}

// Purge removes all expired entries and reports how many were deleted.
func (c *Cache) Purge() (int64, error) {
	res, err := c.db.Exec(`DELETE FROM responses WHERE expires_at <= ?`, c.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("purging cache: %w", err)
	}
	return res.RowsAffected()
}
