// Package v1 implements the REST API over the catalog services.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/index"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Server is the v1 API server.
type Server struct {
	films   *catalog.FilmService
	persons *catalog.PersonService
	log     *slog.Logger
}

// New creates a new v1 API server.
func New(films *catalog.FilmService, persons *catalog.PersonService, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{films: films, persons: persons, log: log.With("component", "api")}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Films
	mux.HandleFunc("GET /api/v1/films", s.listFilms)
	mux.HandleFunc("GET /api/v1/films/search", s.searchFilms)
	mux.HandleFunc("GET /api/v1/films/{id}", s.getFilm)
	mux.HandleFunc("GET /api/v1/films/{id}/summary", s.getFilmSummary)
	mux.HandleFunc("GET /api/v1/films/{id}/similar", s.similarFilms)

	// Persons
	mux.HandleFunc("GET /api/v1/persons/search", s.searchPersons)
	mux.HandleFunc("GET /api/v1/persons/{id}", s.getPerson)
	mux.HandleFunc("GET /api/v1/persons/{id}/film", s.personFilms)

	// System
	mux.HandleFunc("GET /api/v1/health", s.health)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps catalog error kinds to HTTP status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var resErr *catalog.ResolutionError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.As(err, &resErr):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, index.ErrUnavailable):
		s.log.Error("index unavailable", "error", err)
		writeError(w, http.StatusBadGateway, "INDEX_UNAVAILABLE", "search index unavailable")
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

// parsePage reads page_number/page_size, enforcing number ≥ 1 and
// size in [1,100].
func parsePage(r *http.Request) (index.Page, error) {
	page := index.Page{Number: 1, Size: defaultPageSize}

	if v := r.URL.Query().Get("page_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return index.Page{}, fmt.Errorf("page_number must be a positive integer, got %q", v)
		}
		page.Number = n
	}
	if v := r.URL.Query().Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			return index.Page{}, fmt.Errorf("page_size must be between 1 and %d, got %q", maxPageSize, v)
		}
		page.Size = n
	}
	return page, nil
}

func (s *Server) listFilms(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_PAGING", err.Error())
		return
	}

	genreID := r.URL.Query().Get("genre")
	sort := r.URL.Query().Get("sort")

	films, err := s.films.List(r.Context(), genreID, sort, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filmsToResponse(films))
}

func (s *Server) searchFilms(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_PAGING", err.Error())
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_QUERY", "query parameter required")
		return
	}

	films, err := s.films.Search(r.Context(), query, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filmsToResponse(films))
}

func (s *Server) getFilm(w http.ResponseWriter, r *http.Request) {
	detail, err := s.films.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filmDetailToResponse(detail))
}

func (s *Server) getFilmSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.films.GetSummary(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filmResponse{UUID: summary.ID, Title: summary.Title, IMDBRating: summary.Rating})
}

func (s *Server) similarFilms(w http.ResponseWriter, r *http.Request) {
	films, err := s.films.Similar(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, filmsToResponse(films))
}

func (s *Server) searchPersons(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_PAGING", err.Error())
		return
	}

	query := r.URL.Query().Get("query")
	if query == "" {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_QUERY", "query parameter required")
		return
	}

	persons, err := s.persons.Search(r.Context(), query, page)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personsToResponse(persons))
}

func (s *Server) getPerson(w http.ResponseWriter, r *http.Request) {
	detail, err := s.persons.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personToResponse(detail))
}

func (s *Server) personFilms(w http.ResponseWriter, r *http.Request) {
	films, err := s.persons.Films(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, personFilmsToResponse(films))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
