// Package searchapi exposes the video search cache over HTTP.
package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Yadaporn-l/Papakjai/pkg/searchcache"
)

// DefaultPageSize is used when the caller does not ask for a page size.
const DefaultPageSize = 24

// Searcher is the slice of the cache service the API needs.
type Searcher interface {
	Search(ctx context.Context, req searchcache.SearchRequest) (searchcache.SearchPage, error)
}

// API handles the caller-facing search endpoint.
type API struct {
	searcher Searcher
	logger   zerolog.Logger
}

// New creates the API over the given searcher.
func New(searcher Searcher, logger zerolog.Logger) *API {
	return &API{
		searcher: searcher,
		logger:   logger.With().Str("component", "SearchAPI").Logger(),
	}
}

// Routes mounts the API's handlers and middleware on the router. The inline
// group keeps the middleware off routes registered elsewhere on the mux,
// such as the health probe.
func (a *API) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(chimw.Recoverer)
		r.Use(RequestID)
		r.Use(RequestLogger(a.logger))
		r.Get("/api/videos", a.handleSearch)
	})
}

// searchResponse is the JSON body returned to callers.
type searchResponse struct {
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"nextPageToken,omitempty"`
	Cached        bool              `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *API) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		a.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	page, err := a.searcher.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, searchcache.ErrInvalidRequest):
			a.writeError(w, r, http.StatusBadRequest, err)
		case errors.Is(err, searchcache.ErrUpstream):
			a.writeError(w, r, http.StatusBadGateway, err)
		default:
			a.writeError(w, r, http.StatusInternalServerError, err)
		}
		return
	}

	items := page.Items
	if items == nil {
		// Zero results is a valid outcome; render it as an empty list, not null.
		items = []json.RawMessage{}
	}
	a.writeJSON(w, http.StatusOK, searchResponse{
		Items:         items,
		NextPageToken: page.ContinuationToken,
		Cached:        page.ServedFromCache,
	})
}

// parseSearchRequest maps query parameters onto a SearchRequest. Filter
// values pass through untouched; only maxResults is validated here.
func parseSearchRequest(r *http.Request) (searchcache.SearchRequest, error) {
	q := r.URL.Query()

	pageSize := DefaultPageSize
	if raw := q.Get("maxResults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return searchcache.SearchRequest{}, fmt.Errorf("%w: maxResults must be a positive integer", searchcache.ErrInvalidRequest)
		}
		pageSize = parsed
	}

	return searchcache.SearchRequest{
		Query:             q.Get("q"),
		Category:          q.Get("category"),
		Region:            q.Get("region"),
		Duration:          q.Get("duration"),
		SortOrder:         q.Get("order"),
		PageSize:          pageSize,
		ContinuationToken: q.Get("pageToken"),
	}, nil
}

func (a *API) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		a.logger.Error().Err(err).Str("path", r.URL.Path).Msg("Search request failed.")
	}
	a.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error().Err(err).Msg("Failed to encode response body.")
	}
}
