// Package cache provides the cache-store clients and a generic cache-aside accessor.
package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key-value store with per-entry expiration.
//
// A cache is never the source of truth: implementations report backend
// failures on reads as a miss and leave error handling on writes to the
// caller, which logs and moves on.
type Store interface {
	// Get retrieves a cached value by key.
	// Returns nil, false if not found, expired, or the backend failed.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Close releases the backend connection.
	Close() error
}

// Noop is a Store that caches nothing. Used when caching is disabled.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Close() error { return nil }
