package index

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
)

// Elastic implements Client over an Elasticsearch cluster.
type Elastic struct {
	es  *elasticsearch.Client
	log *slog.Logger
}

// Option configures the Elastic client.
type Option func(*elasticsearch.Config)

// WithBasicAuth sets index credentials.
func WithBasicAuth(username, password string) Option {
	return func(cfg *elasticsearch.Config) {
		cfg.Username = username
		cfg.Password = password
	}
}

// WithTransport sets a custom transport (for testing).
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *elasticsearch.Config) {
		cfg.Transport = rt
	}
}

// NewElastic creates a client for the given cluster addresses.
func NewElastic(addresses []string, log *slog.Logger, opts ...Option) (*Elastic, error) {
	if log == nil {
		log = slog.Default()
	}
	cfg := elasticsearch.Config{Addresses: addresses}
	for _, opt := range opts {
		opt(&cfg)
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Elastic{es: es, log: log}, nil
}

// GetByID fetches a single document's source by id.
func (e *Elastic) GetByID(ctx context.Context, index, id string) (json.RawMessage, error) {
	res, err := e.es.Get(index, id, e.es.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w: %v", index, id, ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("get %s/%s: %w", index, id, ErrNotFound)
	}
	if res.IsError() {
		return nil, fmt.Errorf("get %s/%s: %s: %w", index, id, res.Status(), ErrUnavailable)
	}

	var doc struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("get %s/%s: decode response: %w: %v", index, id, ErrUnavailable, err)
	}
	return doc.Source, nil
}

// Search executes a query and returns hits in index-ranked order.
func (e *Elastic) Search(ctx context.Context, index string, q Query) ([]Hit, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("search %s: encode query: %w", index, err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(index),
		e.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w: %v", index, ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("search %s: %w", index, ErrNotFound)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s: %w", index, res.Status(), ErrUnavailable)
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID     string          `json:"_id"`
				Score  float64         `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("search %s: decode response: %w: %v", index, ErrUnavailable, err)
	}

	hits := make([]Hit, len(result.Hits.Hits))
	for i, h := range result.Hits.Hits {
		hits[i] = Hit{ID: h.ID, Score: h.Score, Source: h.Source}
	}
	e.log.Debug("search completed", "index", index, "hits", len(hits))
	return hits, nil
}
