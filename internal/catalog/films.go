package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinedex/cinedex/internal/cache"
	"github.com/cinedex/cinedex/internal/index"
)

// searchFields are the film fields free-text search matches against.
var searchFields = []string{"title", "description"}

// FilmService serves film detail, listing, search and similar-film
// queries over the search index, with a cache-aside path for flat
// summaries.
type FilmService struct {
	idx       index.Client
	films     string // index name
	genres    *GenreResolver
	summaries *cache.Accessor[FilmSummary]
	log       *slog.Logger
}

// NewFilmService composes the film lookup service from its collaborators.
func NewFilmService(idx index.Client, films string, genres *GenreResolver, summaries *cache.Accessor[FilmSummary], log *slog.Logger) *FilmService {
	if log == nil {
		log = slog.Default()
	}
	return &FilmService{
		idx:       idx,
		films:     films,
		genres:    genres,
		summaries: summaries,
		log:       log.With("component", "films"),
	}
}

// fetchFilm loads and decodes a raw film record, mapping a missing
// document to ErrNotFound.
func (s *FilmService) fetchFilm(ctx context.Context, filmID string) (*rawFilm, error) {
	src, err := s.idx.GetByID(ctx, s.films, filmID)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			return nil, fmt.Errorf("film %q: %w", filmID, ErrNotFound)
		}
		return nil, fmt.Errorf("film %q: %w", filmID, err)
	}
	return decodeFilm(src)
}

// GetDetail returns the fully denormalized film: every raw genre name is
// resolved to a genre document, embedded credit lists map directly to
// person refs. A genre name that fails to resolve aborts the call with a
// ResolutionError; enrichment never silently drops a genre.
func (s *FilmService) GetDetail(ctx context.Context, filmID string) (*FilmDetail, error) {
	f, err := s.fetchFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}

	genres := make([]GenreRef, 0, len(f.Genres))
	for _, name := range f.Genres {
		ref, err := s.genres.ResolveName(ctx, name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, &ResolutionError{Genre: name, Err: err}
			}
			return nil, err
		}
		genres = append(genres, ref)
	}

	return &FilmDetail{
		FilmSummary: f.summary(),
		Description: f.Description,
		Genres:      genres,
		Actors:      personRefs(f.Actors),
		Writers:     personRefs(f.Writers),
		Directors:   personRefs(f.Directors),
	}, nil
}

// List returns a page of film summaries in index order, optionally
// restricted to a genre id and sorted by the given spec (leading '-'
// for descending; default is imdb_rating descending).
func (s *FilmService) List(ctx context.Context, genreID, sort string, page index.Page) ([]FilmSummary, error) {
	genreName, err := s.genres.ResolveID(ctx, genreID)
	if err != nil {
		return nil, err
	}

	q := index.ListingQuery(genreName, index.ParseSort(sort), page)
	hits, err := s.idx.Search(ctx, s.films, q)
	if err != nil {
		return nil, fmt.Errorf("list films: %w", err)
	}
	return s.summarize(hits)
}

// Similar returns films sharing at least one genre with the given film.
// A nonexistent film is ErrNotFound, never an empty list.
func (s *FilmService) Similar(ctx context.Context, filmID string) ([]FilmSummary, error) {
	f, err := s.fetchFilm(ctx, filmID)
	if err != nil {
		return nil, err
	}
	if len(f.Genres) == 0 {
		s.log.Debug("film has no genres, nothing similar", "film", filmID)
		return []FilmSummary{}, nil
	}

	hits, err := s.idx.Search(ctx, s.films, index.SimilarQuery(f.Genres))
	if err != nil {
		return nil, fmt.Errorf("similar films for %q: %w", filmID, err)
	}
	return s.summarize(hits)
}

// Search runs a fuzzy free-text query over film titles and descriptions.
func (s *FilmService) Search(ctx context.Context, text string, page index.Page) ([]FilmSummary, error) {
	hits, err := s.idx.Search(ctx, s.films, index.FuzzyTextQuery(text, searchFields, page))
	if err != nil {
		return nil, fmt.Errorf("search films: %w", err)
	}
	return s.summarize(hits)
}

// GetSummary returns the flat film summary through the cache: a hit skips
// the index entirely, a miss loads the record and populates the cache.
func (s *FilmService) GetSummary(ctx context.Context, filmID string) (*FilmSummary, error) {
	summary, ok, err := s.summaries.GetOrLoad(ctx, filmID, func(ctx context.Context) (FilmSummary, bool, error) {
		src, err := s.idx.GetByID(ctx, s.films, filmID)
		if err != nil {
			if errors.Is(err, index.ErrNotFound) {
				return FilmSummary{}, false, nil
			}
			return FilmSummary{}, false, fmt.Errorf("film %q: %w", filmID, err)
		}
		f, err := decodeFilm(src)
		if err != nil {
			return FilmSummary{}, false, err
		}
		return f.summary(), true, nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("film %q: %w", filmID, ErrNotFound)
	}
	return &summary, nil
}

func (s *FilmService) summarize(hits []index.Hit) ([]FilmSummary, error) {
	films := make([]FilmSummary, len(hits))
	for i, hit := range hits {
		f, err := decodeFilm(hit.Source)
		if err != nil {
			return nil, err
		}
		films[i] = f.summary()
	}
	return films, nil
}
