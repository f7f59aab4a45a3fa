// Package catalog implements the query, join-resolution and caching core
// of the media catalog: film and person lookup services composed from the
// search index and the cache store.
package catalog

// FilmSummary is the flat film representation returned by listing, search
// and similar-film queries. It is also the cached entity shape.
type FilmSummary struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Rating *float64 `json:"imdb_rating"`
}

// GenreRef is a resolved genre.
type GenreRef struct {
	ID   string
	Name string
}

// PersonRef is a person as embedded in a film's credit lists.
type PersonRef struct {
	ID       string
	FullName string
}

// FilmDetail is the fully denormalized film: summary fields plus resolved
// genres and embedded credit lists.
type FilmDetail struct {
	FilmSummary
	Description string
	Genres      []GenreRef
	Actors      []PersonRef
	Writers     []PersonRef
	Directors   []PersonRef
}

// Role is a person's function in a film.
type Role string

const (
	RoleDirector Role = "director"
	RoleActor    Role = "actor"
	RoleWriter   Role = "writer"
)

// PersonCredit associates a person with a film through one or more roles.
// Roles are ordered director, actor, writer and never repeat.
type PersonCredit struct {
	FilmID string
	Roles  []Role
}

// PersonDetail is a person with their aggregated film credits.
type PersonDetail struct {
	ID       string
	FullName string
	Credits  []PersonCredit
}

// PersonFilm is one film a person was involved in, without role detail.
type PersonFilm struct {
	FilmID string
	Title  string
	Rating *float64
}
