package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// DefaultTTL is the expiration applied when none is configured.
const DefaultTTL = 300 * time.Second

// Loader fetches an entity from the source of truth.
// The bool result reports whether the entity exists.
type Loader[T any] func(ctx context.Context) (T, bool, error)

// Accessor is a cache-aside policy over a single entity type: check the
// cache first, fall back to the loader on a miss, populate the cache with
// the result. Entities are stored as JSON.
type Accessor[T any] struct {
	store  Store
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewAccessor creates an accessor with the given key prefix and TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewAccessor[T any](store Store, prefix string, ttl time.Duration, log *slog.Logger) *Accessor[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Accessor[T]{store: store, prefix: prefix, ttl: ttl, log: log}
}

func (a *Accessor[T]) cacheKey(key string) string {
	if a.prefix == "" {
		return key
	}
	return a.prefix + ":" + key
}

// Get attempts a cache read. A payload that fails to decode is treated as
// a miss, never as an error.
func (a *Accessor[T]) Get(ctx context.Context, key string) (T, bool) {
	var value T
	data, ok := a.store.Get(ctx, a.cacheKey(key))
	if !ok {
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		a.log.Warn("discarding undecodable cache entry", "key", a.cacheKey(key), "error", err)
		var zero T
		return zero, false
	}
	return value, true
}

// Put writes an entity to the cache. Failures are logged, never returned:
// a cache write must not fail the request that produced the value.
func (a *Accessor[T]) Put(ctx context.Context, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		a.log.Warn("cache encode failed", "key", a.cacheKey(key), "error", err)
		return
	}
	if err := a.store.Set(ctx, a.cacheKey(key), data, a.ttl); err != nil {
		a.log.Warn("cache set failed", "key", a.cacheKey(key), "error", err)
	}
}

// GetOrLoad returns the cached entity for key, or invokes the loader and
// caches its result. A loader error or absent entity is returned without
// touching the cache.
func (a *Accessor[T]) GetOrLoad(ctx context.Context, key string, load Loader[T]) (T, bool, error) {
	if value, ok := a.Get(ctx, key); ok {
		return value, true, nil
	}

	value, ok, err := load(ctx)
	if err != nil || !ok {
		var zero T
		return zero, false, err
	}

	a.Put(ctx, key, value)
	return value, true, nil
}
