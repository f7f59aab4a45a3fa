package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/cache"
)

func openSQLite(t *testing.T) *cache.SQLite {
	t.Helper()
	store, err := cache.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLite_SetGet(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte(`{"id":"f1"}`), time.Minute))

	got, ok := store.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, []byte(`{"id":"f1"}`), got)
}

func TestSQLite_GetMissing(t *testing.T) {
	store := openSQLite(t)

	_, ok := store.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestSQLite_Overwrite(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("old"), time.Minute))
	require.NoError(t, store.Set(ctx, "k1", []byte("new"), time.Minute))

	got, ok := store.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestSQLite_Expiry(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k1", []byte("v"), -time.Second))

	_, ok := store.Get(ctx, "k1")
	assert.False(t, ok, "expired entry must read as a miss")
}

func TestSQLite_Prune(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "live", []byte("v"), time.Minute))
	require.NoError(t, store.Set(ctx, "dead1", []byte("v"), -time.Second))
	require.NoError(t, store.Set(ctx, "dead2", []byte("v"), -time.Second))

	removed, err := store.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, ok := store.Get(ctx, "live")
	assert.True(t, ok)
}
