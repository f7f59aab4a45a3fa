package index

import "strings"

// DefaultSortSpec is the listing sort applied when the caller gives none.
const DefaultSortSpec = "-imdb_rating"

// Page is offset-based pagination. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset returns the starting offset for the page, never negative.
func (p Page) Offset() int {
	if p.Number < 2 || p.Size < 1 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// Sort is a single-field sort order.
type Sort struct {
	Field string
	Order string // "asc" or "desc"
}

// ParseSort parses a sort spec where a leading '-' marks descending order.
// An empty spec parses to the default (imdb_rating descending).
func ParseSort(spec string) Sort {
	if spec == "" {
		spec = DefaultSortSpec
	}
	if field, ok := strings.CutPrefix(spec, "-"); ok {
		return Sort{Field: field, Order: "desc"}
	}
	return Sort{Field: spec, Order: "asc"}
}

// Query is a structured query descriptor. It marshals to the index's
// native query DSL; builders below are pure and perform no I/O.
type Query struct {
	Query map[string]any   `json:"query"`
	Sort  []map[string]any `json:"sort,omitempty"`
	From  int              `json:"from,omitempty"`
	Size  int              `json:"size,omitempty"`
}

// ListingQuery matches all documents, or only those whose genre-name set
// contains genreName when it is non-empty, sorted and paginated.
func ListingQuery(genreName string, sort Sort, page Page) Query {
	q := Query{
		Query: map[string]any{"match_all": map[string]any{}},
		Sort:  []map[string]any{{sort.Field: map[string]any{"order": sort.Order}}},
		From:  page.Offset(),
		Size:  page.Size,
	}
	if genreName != "" {
		q.Query = map[string]any{"terms": map[string]any{"genres": []string{genreName}}}
	}
	return q
}

// SimilarQuery matches documents sharing at least one of the given genre names.
func SimilarQuery(genreNames []string) Query {
	should := make([]map[string]any, 0, len(genreNames))
	for _, name := range genreNames {
		should = append(should, map[string]any{"match": map[string]any{"genres": name}})
	}
	return Query{
		Query: map[string]any{
			"bool": map[string]any{
				"should":               should,
				"minimum_should_match": 1,
			},
		},
	}
}

// FuzzyTextQuery is a multi-field free-text match with automatic fuzziness.
func FuzzyTextQuery(text string, fields []string, page Page) Query {
	return Query{
		Query: map[string]any{
			"multi_match": map[string]any{
				"query":     text,
				"fields":    fields,
				"fuzziness": "AUTO",
			},
		},
		From: page.Offset(),
		Size: page.Size,
	}
}

// FuzzyNameQuery is a fuzzy match on a full-name field.
func FuzzyNameQuery(name string, page Page) Query {
	return Query{
		Query: map[string]any{
			"match": map[string]any{
				"full_name": map[string]any{"query": name, "fuzziness": "auto"},
			},
		},
		From: page.Offset(),
		Size: page.Size,
	}
}

// MatchFieldQuery matches documents whose field matches value.
func MatchFieldQuery(field, value string) Query {
	return Query{
		Query: map[string]any{
			"bool": map[string]any{
				"should":               []map[string]any{{"match": map[string]any{field: value}}},
				"minimum_should_match": 1,
			},
		},
	}
}

// MatchNameQuery matches documents by their name field.
func MatchNameQuery(name string) Query {
	return Query{
		Query: map[string]any{"match": map[string]any{"name": name}},
	}
}
