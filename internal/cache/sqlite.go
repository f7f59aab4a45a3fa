package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	expires_at TIMESTAMP NOT NULL
)`

// SQLite is a Store backed by an embedded SQLite database, for
// single-node deployments that don't run Redis.
type SQLite struct {
	db  *sql.DB
	log *slog.Logger
}

// OpenSQLite opens (and if needed initializes) a SQLite-backed store.
func OpenSQLite(path string, log *slog.Logger) (*SQLite, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &SQLite{db: db, log: log}, nil
}

// Get retrieves a cached value by key.
// Returns nil, false if not found, expired, or the query failed.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, bool) {
	var value []byte
	var expiresAt time.Time

	err := s.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM cache_entries WHERE key = ?", key,
	).Scan(&value, &expiresAt)

	if err != nil {
		if err != sql.ErrNoRows {
			s.log.Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	if time.Now().After(expiresAt) {
		return nil, false
	}
	return value, true
}

// Set stores a value with the given TTL.
func (s *SQLite) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (key, value, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, value, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Prune removes all expired entries.
// Returns the number of entries removed.
func (s *SQLite) Prune(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM cache_entries WHERE expires_at < ?", time.Now(),
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
