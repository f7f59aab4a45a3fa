package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cinedex/cinedex/internal/index"
)

// roleFields maps each role category to the film-index field holding the
// category's person names. The slice order fixes both the scan order and
// the role order within a credit: director, actor, writer.
var roleFields = []struct {
	role  Role
	field string
}{
	{RoleDirector, "directors_names"},
	{RoleActor, "actors_names"},
	{RoleWriter, "writers_names"},
}

// CreditEntry is one film a person is credited in, with every role they
// hold there.
type CreditEntry struct {
	FilmID string
	Title  string
	Rating *float64
	Roles  []Role
}

// CreditSet holds a person's credits keyed by film, preserving the order
// films were first seen.
type CreditSet struct {
	order  []string
	byFilm map[string]*CreditEntry
}

func newCreditSet() *CreditSet {
	return &CreditSet{byFilm: make(map[string]*CreditEntry)}
}

// add upserts a role for a film. The first sighting of a film records its
// title and rating; later sightings only append the role.
func (s *CreditSet) add(f *rawFilm, role Role) {
	entry, ok := s.byFilm[f.ID]
	if !ok {
		entry = &CreditEntry{FilmID: f.ID, Title: f.Title, Rating: f.Rating}
		s.byFilm[f.ID] = entry
		s.order = append(s.order, f.ID)
	}
	entry.Roles = append(entry.Roles, role)
}

// Entries returns the credits in first-seen order.
func (s *CreditSet) Entries() []CreditEntry {
	entries := make([]CreditEntry, len(s.order))
	for i, id := range s.order {
		entries[i] = *s.byFilm[id]
	}
	return entries
}

// Len returns the number of distinct films.
func (s *CreditSet) Len() int { return len(s.order) }

// CreditAggregator collects a person's film credits by scanning the film
// index once per role category.
type CreditAggregator struct {
	idx   index.Client
	films string // index name
	log   *slog.Logger
}

// NewCreditAggregator creates an aggregator over the given film index.
func NewCreditAggregator(idx index.Client, films string, log *slog.Logger) *CreditAggregator {
	if log == nil {
		log = slog.Default()
	}
	return &CreditAggregator{idx: idx, films: films, log: log.With("component", "credits")}
}

// CreditsFor returns every film fullName is credited in, with the roles
// they hold per film. The three category searches run concurrently, but
// results merge in fixed category order so role lists always read
// director, actor, writer. Any category failing fails the whole
// aggregation; partial credit sets are never returned.
func (a *CreditAggregator) CreditsFor(ctx context.Context, fullName string) (*CreditSet, error) {
	results := make([][]index.Hit, len(roleFields))

	g, ctx := errgroup.WithContext(ctx)
	for i, rf := range roleFields {
		g.Go(func() error {
			hits, err := a.idx.Search(ctx, a.films, index.MatchFieldQuery(rf.field, fullName))
			if err != nil {
				return fmt.Errorf("%s credits for %q: %w", rf.role, fullName, err)
			}
			results[i] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := newCreditSet()
	for i, rf := range roleFields {
		for _, hit := range results[i] {
			f, err := decodeFilm(hit.Source)
			if err != nil {
				return nil, err
			}
			set.add(f, rf.role)
		}
	}

	a.log.Debug("credits aggregated", "person", fullName, "films", set.Len())
	return set, nil
}
