package catalog

import "encoding/json"

// Raw index documents are decoded through these types so that malformed
// responses surface as a DecodeError at the boundary instead of failing
// deeper in the join logic.

type rawCredit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawFilm struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Rating      *float64    `json:"imdb_rating"`
	Genres      []string    `json:"genres"`
	Actors      []rawCredit `json:"actors"`
	Writers     []rawCredit `json:"writers"`
	Directors   []rawCredit `json:"directors"`
}

type rawGenre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawPerson struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

func decodeFilm(src json.RawMessage) (*rawFilm, error) {
	var f rawFilm
	if err := json.Unmarshal(src, &f); err != nil {
		return nil, &DecodeError{Doc: "film", Err: err}
	}
	if f.ID == "" {
		return nil, &DecodeError{Doc: "film", Field: "id"}
	}
	if f.Title == "" {
		return nil, &DecodeError{Doc: "film", Field: "title"}
	}
	return &f, nil
}

func decodeGenre(src json.RawMessage) (*rawGenre, error) {
	var g rawGenre
	if err := json.Unmarshal(src, &g); err != nil {
		return nil, &DecodeError{Doc: "genre", Err: err}
	}
	if g.ID == "" {
		return nil, &DecodeError{Doc: "genre", Field: "id"}
	}
	if g.Name == "" {
		return nil, &DecodeError{Doc: "genre", Field: "name"}
	}
	return &g, nil
}

func decodePerson(src json.RawMessage) (*rawPerson, error) {
	var p rawPerson
	if err := json.Unmarshal(src, &p); err != nil {
		return nil, &DecodeError{Doc: "person", Err: err}
	}
	if p.ID == "" {
		return nil, &DecodeError{Doc: "person", Field: "id"}
	}
	if p.FullName == "" {
		return nil, &DecodeError{Doc: "person", Field: "full_name"}
	}
	return &p, nil
}

func (f *rawFilm) summary() FilmSummary {
	return FilmSummary{ID: f.ID, Title: f.Title, Rating: f.Rating}
}

func personRefs(credits []rawCredit) []PersonRef {
	refs := make([]PersonRef, len(credits))
	for i, c := range credits {
		refs[i] = PersonRef{ID: c.ID, FullName: c.Name}
	}
	return refs
}
