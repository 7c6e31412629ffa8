// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const userCacheSchema = `
CREATE TABLE IF NOT EXISTS users (
	account_id TEXT PRIMARY KEY,
	allocation TEXT NOT NULL
);
`

// UserCache persists account ID to allocation name mappings between runs,
// so repeated exports do not refetch every user in the changelog.
type UserCache struct {
	db *sql.DB
}

// OpenUserCache opens (creating if needed) the cache database at path.
func OpenUserCache(path string) (*UserCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening user cache %s: %w", path, err)
	}
	if _, err := db.Exec(userCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing user cache %s: %w", path, err)
	}
	return &UserCache{db: db}, nil
}

// Get returns the cached allocation name for an account ID, or "" when
// the ID is not cached.
func (c *UserCache) Get(accountID string) (string, error) {
	var allocation string
	err := c.db.QueryRow(
		`SELECT allocation FROM users WHERE account_id = ?`, accountID,
	).Scan(&allocation)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading user cache: %w", err)
	}
	return allocation, nil
}

// Put stores or updates the allocation name for an account ID.
func (c *UserCache) Put(accountID, allocation string) error {
	_, err := c.db.Exec(
		`INSERT INTO users (account_id, allocation) VALUES (?, ?)
		 ON CONFLICT(account_id) DO UPDATE SET allocation = excluded.allocation`,
		accountID, allocation,
	)
	if err != nil {
		return fmt.Errorf("writing user cache: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *UserCache) Close() error {
	return c.db.Close()
}
