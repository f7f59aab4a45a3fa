package catalog_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cinedex/cinedex/internal/index"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is a minimal in-memory cache.Store for tests.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Close() error { return nil }

// filmDoc builds a raw film document as the index would return it.
func filmDoc(id, title string, rating float64, genres ...string) json.RawMessage {
	doc := map[string]any{
		"id":          id,
		"title":       title,
		"imdb_rating": rating,
		"genres":      genres,
	}
	b, _ := json.Marshal(doc)
	return b
}

func genreDoc(id, name string) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"id": id, "name": name})
	return b
}

func personDoc(id, fullName string) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"id": id, "full_name": fullName})
	return b
}

func hits(sources ...json.RawMessage) []index.Hit {
	out := make([]index.Hit, len(sources))
	for i, src := range sources {
		out[i] = index.Hit{Score: float64(len(sources) - i), Source: src}
	}
	return out
}

// queryOn matches any index.Query whose query clause mentions the given
// field or value, letting tests route mock results per role category.
type queryOn struct {
	fragment string
}

func (m queryOn) Matches(x any) bool {
	q, ok := x.(index.Query)
	if !ok {
		return false
	}
	b, err := json.Marshal(q.Query)
	if err != nil {
		return false
	}
	return strings.Contains(string(b), m.fragment)
}

func (m queryOn) String() string {
	return fmt.Sprintf("query mentioning %q", m.fragment)
}
