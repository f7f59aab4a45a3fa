package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hbollon/go-edlib"

	"github.com/cinedex/cinedex/internal/index"
)

// GenreResolver translates genre names to genre documents and back.
// Raw film records carry only genre names; listing filters carry only ids.
type GenreResolver struct {
	idx    index.Client
	genres string // index name
	log    *slog.Logger
}

// NewGenreResolver creates a resolver over the given genre index.
func NewGenreResolver(idx index.Client, genres string, log *slog.Logger) *GenreResolver {
	if log == nil {
		log = slog.Default()
	}
	return &GenreResolver{idx: idx, genres: genres, log: log.With("component", "genres")}
}

// ResolveName finds the genre document for a genre name.
// When the index returns several candidates, the one whose name is most
// similar to the query wins; ties keep the index's own ranking.
func (r *GenreResolver) ResolveName(ctx context.Context, name string) (GenreRef, error) {
	hits, err := r.idx.Search(ctx, r.genres, index.MatchNameQuery(name))
	if err != nil {
		return GenreRef{}, fmt.Errorf("resolve genre %q: %w", name, err)
	}
	if len(hits) == 0 {
		return GenreRef{}, fmt.Errorf("genre %q: %w", name, ErrNotFound)
	}

	want := normalizeName(name)
	var best *rawGenre
	var bestScore float32
	for _, hit := range hits {
		g, err := decodeGenre(hit.Source)
		if err != nil {
			return GenreRef{}, err
		}
		score := edlib.JaroWinklerSimilarity(want, normalizeName(g.Name))
		if best == nil || score > bestScore {
			best, bestScore = g, score
		}
	}

	r.log.Debug("genre resolved", "name", name, "id", best.ID, "score", bestScore)
	return GenreRef{ID: best.ID, Name: best.Name}, nil
}

// ResolveID returns the genre name for an id. An empty id short-circuits
// to an empty name with no lookup, so optional filter parameters pass
// through cleanly.
func (r *GenreResolver) ResolveID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", nil
	}

	src, err := r.idx.GetByID(ctx, r.genres, id)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			return "", fmt.Errorf("genre id %q: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("resolve genre id %q: %w", id, err)
	}
	g, err := decodeGenre(src)
	if err != nil {
		return "", err
	}
	return g.Name, nil
}
