// Package videofinder is a thin client for the YouTube Data API v3
// search.list endpoint. It expands the caller's filter values into search
// keywords and request parameters, issues a single fetch per call, and
// performs no retries and no caching of its own.
package videofinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Yadaporn-l/Papakjai/pkg/searchcache"
)

// DefaultBaseURL is the production YouTube Data API endpoint root.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// Client calls the upstream video search API.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	apiKey  string
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBaseURL overrides the API root, mainly for tests.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// New creates a client keyed by the given API credential.
func New(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("apiKey required")
	}
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:    http.DefaultClient,
		baseURL: u,
		apiKey:  apiKey,
		logger:  logger.With().Str("component", "VideoFinder").Logger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// searchResponse is the slice of the search.list response shape the service
// relays; item payloads stay opaque.
type searchResponse struct {
	Items         []json.RawMessage `json:"items"`
	NextPageToken string            `json:"nextPageToken"`
}

// Fetch performs one search.list call for the request, returning the page
// items, the provider's next-page token when more results exist, and the
// fully-expanded query string that was sent.
func (c *Client) Fetch(ctx context.Context, req searchcache.SearchRequest) (searchcache.ProviderPage, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/search"

	expanded := expandQuery(req)

	q := u.Query()
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("q", expanded)
	q.Set("key", c.apiKey)
	if req.PageSize > 0 {
		q.Set("maxResults", strconv.Itoa(req.PageSize))
	}
	if v, ok := filterValue(req.SortOrder); ok {
		q.Set("order", v)
	}
	if v, ok := filterValue(req.Duration); ok {
		q.Set("videoDuration", v)
	}
	if req.ContinuationToken != "" {
		q.Set("pageToken", req.ContinuationToken)
	}
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return searchcache.ProviderPage{}, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return searchcache.ProviderPage{}, fmt.Errorf("video search request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error().Int("status", resp.StatusCode).Str("query", expanded).Msg("Upstream video search returned an error status.")
		return searchcache.ProviderPage{}, fmt.Errorf("video search status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return searchcache.ProviderPage{}, fmt.Errorf("decode video search response: %w", err)
	}

	c.logger.Debug().Str("query", expanded).Int("items", len(decoded.Items)).Msg("Fetched video search page.")

	return searchcache.ProviderPage{
		Items:             decoded.Items,
		ContinuationToken: decoded.NextPageToken,
		SourceQuery:       expanded,
	}, nil
}

// expandQuery builds the free-text query actually sent upstream: the user's
// query plus any category and region filter values as extra keywords.
func expandQuery(req searchcache.SearchRequest) string {
	terms := []string{strings.TrimSpace(req.Query)}
	if v, ok := filterValue(req.Category); ok {
		terms = append(terms, v)
	}
	if v, ok := filterValue(req.Region); ok {
		terms = append(terms, v, "travel")
	}
	return strings.Join(terms, " ")
}

// filterValue reports whether the filter carries a concrete value, treating
// "", "all" and "any" as the not-applied sentinels.
func filterValue(v string) (string, bool) {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "all", "any":
		return "", false
	}
	return v, true
}
