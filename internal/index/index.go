// Package index provides the search-index client and query descriptors.
package index

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrNotFound indicates the requested document doesn't exist.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable indicates the index could not be reached or errored.
	ErrUnavailable = errors.New("index unavailable")
)

// Hit is a single search result.
type Hit struct {
	ID     string
	Score  float64
	Source json.RawMessage
}

//go:generate mockgen -destination mocks/client.go -package mocks github.com/cinedex/cinedex/internal/index Client

// Client reads documents from the search index.
//
// Implementations must distinguish a missing document (ErrNotFound) from a
// transport or backend failure (ErrUnavailable).
type Client interface {
	// GetByID fetches a single document's source by id.
	GetByID(ctx context.Context, index, id string) (json.RawMessage, error)

	// Search executes a query and returns hits in index-ranked order.
	Search(ctx context.Context, index string, q Query) ([]Hit, error)
}
