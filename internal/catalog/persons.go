package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cinedex/cinedex/internal/index"
)

// PersonService serves person detail, person search and person-film
// listings, joining person records with aggregated credits.
type PersonService struct {
	idx     index.Client
	persons string // index name
	credits *CreditAggregator
	log     *slog.Logger
}

// NewPersonService composes the person lookup service from its collaborators.
func NewPersonService(idx index.Client, persons string, credits *CreditAggregator, log *slog.Logger) *PersonService {
	if log == nil {
		log = slog.Default()
	}
	return &PersonService{
		idx:     idx,
		persons: persons,
		credits: credits,
		log:     log.With("component", "persons"),
	}
}

func (s *PersonService) fetchPerson(ctx context.Context, personID string) (*rawPerson, error) {
	src, err := s.idx.GetByID(ctx, s.persons, personID)
	if err != nil {
		if errors.Is(err, index.ErrNotFound) {
			return nil, fmt.Errorf("person %q: %w", personID, ErrNotFound)
		}
		return nil, fmt.Errorf("person %q: %w", personID, err)
	}
	return decodePerson(src)
}

// GetDetail returns a person with their aggregated credits (roles only).
func (s *PersonService) GetDetail(ctx context.Context, personID string) (*PersonDetail, error) {
	p, err := s.fetchPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	set, err := s.credits.CreditsFor(ctx, p.FullName)
	if err != nil {
		return nil, err
	}
	return &PersonDetail{ID: p.ID, FullName: p.FullName, Credits: roleCredits(set)}, nil
}

// Search runs a fuzzy match on person names and decorates every hit with
// its aggregated credits. This costs one aggregation round-trip set per
// matched person; the page-size cap bounds the fan-out.
func (s *PersonService) Search(ctx context.Context, query string, page index.Page) ([]PersonDetail, error) {
	hits, err := s.idx.Search(ctx, s.persons, index.FuzzyNameQuery(query, page))
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}

	persons := make([]PersonDetail, len(hits))
	for i, hit := range hits {
		p, err := decodePerson(hit.Source)
		if err != nil {
			return nil, err
		}
		set, err := s.credits.CreditsFor(ctx, p.FullName)
		if err != nil {
			return nil, err
		}
		persons[i] = PersonDetail{ID: p.ID, FullName: p.FullName, Credits: roleCredits(set)}
	}
	return persons, nil
}

// Films returns the films a person is credited in, with title and rating
// but no role detail.
func (s *PersonService) Films(ctx context.Context, personID string) ([]PersonFilm, error) {
	p, err := s.fetchPerson(ctx, personID)
	if err != nil {
		return nil, err
	}

	set, err := s.credits.CreditsFor(ctx, p.FullName)
	if err != nil {
		return nil, err
	}

	films := make([]PersonFilm, 0, set.Len())
	for _, entry := range set.Entries() {
		films = append(films, PersonFilm{FilmID: entry.FilmID, Title: entry.Title, Rating: entry.Rating})
	}
	return films, nil
}

func roleCredits(set *CreditSet) []PersonCredit {
	credits := make([]PersonCredit, 0, set.Len())
	for _, entry := range set.Entries() {
		credits = append(credits, PersonCredit{FilmID: entry.FilmID, Roles: entry.Roles})
	}
	return credits
}
