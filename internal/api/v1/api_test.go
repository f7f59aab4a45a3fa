package v1_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	v1 "github.com/cinedex/cinedex/internal/api/v1"
	"github.com/cinedex/cinedex/internal/cache"
	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/index"
	"github.com/cinedex/cinedex/internal/index/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestMux wires real services over a mocked index client.
func newTestMux(idx index.Client) *http.ServeMux {
	log := testLogger()
	resolver := catalog.NewGenreResolver(idx, "genres", log)
	summaries := cache.NewAccessor[catalog.FilmSummary](cache.Noop{}, "film", time.Minute, log)
	films := catalog.NewFilmService(idx, "movies", resolver, summaries, log)
	credits := catalog.NewCreditAggregator(idx, "movies", log)
	persons := catalog.NewPersonService(idx, "persons", credits, log)

	mux := http.NewServeMux()
	v1.New(films, persons, log).RegisterRoutes(mux)
	return mux
}

func doRequest(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Code
}

func filmSource(id, title string, rating float64) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"id": id, "title": title, "imdb_rating": rating})
	return b
}

func personSource(id, fullName string) json.RawMessage {
	b, _ := json.Marshal(map[string]any{"id": id, "full_name": fullName})
	return b
}

func TestListFilms(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().Search(gomock.Any(), "movies", gomock.Any()).
		Return([]index.Hit{{Source: filmSource("f1", "Heat", 8.3)}}, nil)

	rec := doRequest(t, newTestMux(idx), "/api/v1/films?page_number=1&page_size=10")
	require.Equal(t, http.StatusOK, rec.Code)

	var films []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &films))
	require.Len(t, films, 1)
	assert.Equal(t, "f1", films[0]["uuid"])
	assert.Equal(t, "Heat", films[0]["title"])
	assert.Equal(t, 8.3, films[0]["imdb_rating"])
}

func TestListFilms_InvalidPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux := newTestMux(mocks.NewMockClient(ctrl)) // no index call expected

	for _, path := range []string{
		"/api/v1/films?page_number=0",
		"/api/v1/films?page_size=0",
		"/api/v1/films?page_size=101",
		"/api/v1/films?page_number=abc",
	} {
		rec := doRequest(t, mux, path)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
		assert.Equal(t, "INVALID_PAGING", errCode(t, rec), path)
	}
}

func TestGetFilm_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "movies", "missing").
		Return(nil, fmt.Errorf("get movies/missing: %w", index.ErrNotFound))

	rec := doRequest(t, newTestMux(idx), "/api/v1/films/missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, rec))
}

// newCachingTestMux is newTestMux with a real sqlite store behind the
// summary accessor, so repeated summary lookups hit the cache.
func newCachingTestMux(t *testing.T, idx index.Client) *http.ServeMux {
	t.Helper()
	log := testLogger()

	store, err := cache.OpenSQLite(filepath.Join(t.TempDir(), "cache.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	resolver := catalog.NewGenreResolver(idx, "genres", log)
	summaries := cache.NewAccessor[catalog.FilmSummary](store, "film", time.Minute, log)
	films := catalog.NewFilmService(idx, "movies", resolver, summaries, log)
	credits := catalog.NewCreditAggregator(idx, "movies", log)
	persons := catalog.NewPersonService(idx, "persons", credits, log)

	mux := http.NewServeMux()
	v1.New(films, persons, log).RegisterRoutes(mux)
	return mux
}

func TestGetFilmSummary_ServedFromCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "movies", "f1").
		Return(filmSource("f1", "Heat", 8.3), nil).
		Times(1)

	mux := newCachingTestMux(t, idx)

	for range 2 {
		rec := doRequest(t, mux, "/api/v1/films/f1/summary")
		require.Equal(t, http.StatusOK, rec.Code)

		var film map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &film))
		assert.Equal(t, "f1", film["uuid"])
		assert.Equal(t, "Heat", film["title"])
		assert.Equal(t, 8.3, film["imdb_rating"])
	}
}

func TestGetFilmSummary_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "movies", "missing").
		Return(nil, fmt.Errorf("get movies/missing: %w", index.ErrNotFound))

	rec := doRequest(t, newTestMux(idx), "/api/v1/films/missing/summary")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errCode(t, rec))
}

func TestGetFilm_IndexUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "movies", "f1").
		Return(nil, fmt.Errorf("get movies/f1: %w", index.ErrUnavailable))

	rec := doRequest(t, newTestMux(idx), "/api/v1/films/f1")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "INDEX_UNAVAILABLE", errCode(t, rec))
}

func TestSearchFilms_RequiresQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux := newTestMux(mocks.NewMockClient(ctrl))

	rec := doRequest(t, mux, "/api/v1/films/search")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_QUERY", errCode(t, rec))
}

func TestSimilarFilms_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "movies", "missing").
		Return(nil, fmt.Errorf("get movies/missing: %w", index.ErrNotFound))

	rec := doRequest(t, newTestMux(idx), "/api/v1/films/missing/similar")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPerson(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "persons", "p1").Return(personSource("p1", "Jane Doe"), nil)
	// Credit scan: actor in one film, nothing else.
	idx.EXPECT().Search(gomock.Any(), "movies", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, q index.Query) ([]index.Hit, error) {
			b, _ := json.Marshal(q.Query)
			if strings.Contains(string(b), "actors_names") {
				return []index.Hit{{Source: filmSource("f1", "Film A", 7.0)}}, nil
			}
			return nil, nil
		}).
		Times(3)

	rec := doRequest(t, newTestMux(idx), "/api/v1/persons/p1")
	require.Equal(t, http.StatusOK, rec.Code)

	var person struct {
		UUID     string `json:"uuid"`
		FullName string `json:"full_name"`
		Films    []struct {
			UUID  string   `json:"uuid"`
			Roles []string `json:"roles"`
		} `json:"films"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &person))
	assert.Equal(t, "Jane Doe", person.FullName)
	require.Len(t, person.Films, 1)
	assert.Equal(t, []string{"actor"}, person.Films[0].Roles)
}

func TestPersonFilms(t *testing.T) {
	ctrl := gomock.NewController(t)
	idx := mocks.NewMockClient(ctrl)

	idx.EXPECT().GetByID(gomock.Any(), "persons", "p1").Return(personSource("p1", "Jane Doe"), nil)
	idx.EXPECT().Search(gomock.Any(), "movies", gomock.Any()).
		Return([]index.Hit{{Source: filmSource("f1", "Film A", 7.0)}}, nil)
	idx.EXPECT().Search(gomock.Any(), "movies", gomock.Any()).Return(nil, nil).Times(2)

	rec := doRequest(t, newTestMux(idx), "/api/v1/persons/p1/film")
	require.Equal(t, http.StatusOK, rec.Code)

	var films []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &films))
	require.Len(t, films, 1)
	assert.Equal(t, "Film A", films[0]["title"])
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	mux := newTestMux(mocks.NewMockClient(ctrl))

	rec := doRequest(t, mux, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}
