package v1

import "github.com/cinedex/cinedex/internal/catalog"

// Response shapes keep the wire field names of the upstream catalog API
// (uuid, imdb_rating, full_name) decoupled from the domain types.

type filmResponse struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

type genreResponse struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

type personRefResponse struct {
	UUID     string `json:"uuid"`
	FullName string `json:"full_name"`
}

type filmDetailResponse struct {
	UUID        string              `json:"uuid"`
	Title       string              `json:"title"`
	IMDBRating  *float64            `json:"imdb_rating"`
	Description string              `json:"description"`
	Genres      []genreResponse     `json:"genres"`
	Actors      []personRefResponse `json:"actors"`
	Writers     []personRefResponse `json:"writers"`
	Directors   []personRefResponse `json:"directors"`
}

type personCreditResponse struct {
	UUID  string         `json:"uuid"`
	Roles []catalog.Role `json:"roles"`
}

type personResponse struct {
	UUID     string                 `json:"uuid"`
	FullName string                 `json:"full_name"`
	Films    []personCreditResponse `json:"films"`
}

type personFilmResponse struct {
	UUID       string   `json:"uuid"`
	Title      string   `json:"title"`
	IMDBRating *float64 `json:"imdb_rating"`
}

func filmsToResponse(films []catalog.FilmSummary) []filmResponse {
	out := make([]filmResponse, len(films))
	for i, f := range films {
		out[i] = filmResponse{UUID: f.ID, Title: f.Title, IMDBRating: f.Rating}
	}
	return out
}

func personRefsToResponse(refs []catalog.PersonRef) []personRefResponse {
	out := make([]personRefResponse, len(refs))
	for i, r := range refs {
		out[i] = personRefResponse{UUID: r.ID, FullName: r.FullName}
	}
	return out
}

func filmDetailToResponse(d *catalog.FilmDetail) filmDetailResponse {
	genres := make([]genreResponse, len(d.Genres))
	for i, g := range d.Genres {
		genres[i] = genreResponse{UUID: g.ID, Name: g.Name}
	}
	return filmDetailResponse{
		UUID:        d.ID,
		Title:       d.Title,
		IMDBRating:  d.Rating,
		Description: d.Description,
		Genres:      genres,
		Actors:      personRefsToResponse(d.Actors),
		Writers:     personRefsToResponse(d.Writers),
		Directors:   personRefsToResponse(d.Directors),
	}
}

func personToResponse(d *catalog.PersonDetail) personResponse {
	films := make([]personCreditResponse, len(d.Credits))
	for i, c := range d.Credits {
		films[i] = personCreditResponse{UUID: c.FilmID, Roles: c.Roles}
	}
	return personResponse{UUID: d.ID, FullName: d.FullName, Films: films}
}

func personsToResponse(persons []catalog.PersonDetail) []personResponse {
	out := make([]personResponse, len(persons))
	for i := range persons {
		out[i] = personToResponse(&persons[i])
	}
	return out
}

func personFilmsToResponse(films []catalog.PersonFilm) []personFilmResponse {
	out := make([]personFilmResponse, len(films))
	for i, f := range films {
		out[i] = personFilmResponse{UUID: f.FilmID, Title: f.Title, IMDBRating: f.Rating}
	}
	return out
}
