// Package searchcache decides, per search request, whether to serve a
// previously fetched first page of results or to fetch a fresh one upstream
// and persist it. Next-page requests are always relayed straight to the
// provider without touching the store.
package searchcache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTTL is how long a persisted entry stays servable, evaluated at
// read time.
const DefaultTTL = 24 * time.Hour

// Config holds the tunable parts of the cache service.
type Config struct {
	// TTL is the maximum entry age before a stored result is ignored.
	// Zero means DefaultTTL.
	TTL time.Duration
	// DefaultQuery replaces an empty or whitespace-only query before the
	// fingerprint is computed or the provider is called. Must be non-empty.
	DefaultQuery string
}

// Service implements the cache-or-fetch control flow in front of a Provider,
// persisting first-page results in an EntryStore. It holds no mutable state
// of its own; concurrent Search calls share only the store, and two
// simultaneous misses for the same key will both fetch upstream with the
// last write winning.
type Service struct {
	ttl          time.Duration
	defaultQuery string
	provider     Provider
	store        EntryStore
	logger       zerolog.Logger
	now          func() time.Time
}

// Option configures a Service beyond its required dependencies.
type Option func(*Service)

// WithClock overrides the time source used for freshness checks and entry
// timestamps. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a cache service over the given provider and store.
func New(cfg Config, provider Provider, store EntryStore, logger zerolog.Logger, opts ...Option) (*Service, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if cfg.DefaultQuery == "" {
		return nil, fmt.Errorf("default query cannot be empty")
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	s := &Service{
		ttl:          ttl,
		defaultQuery: cfg.DefaultQuery,
		provider:     provider,
		store:        store,
		logger:       logger.With().Str("component", "SearchCache").Logger(),
		now:          time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Search serves one search request. First-page requests are answered from
// the store when a fresh entry exists; otherwise the provider is called and,
// on success, the result is upserted under the request's fingerprint.
// Requests carrying a continuation token bypass the store in both
// directions. A provider failure is returned wrapped in ErrUpstream; store
// failures are logged and degrade to a miss (read) or a warning (write).
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchPage, error) {
	// Never send an empty query upstream, and fingerprint the substituted
	// query so repeated empty-query requests share an entry.
	if strings.TrimSpace(req.Query) == "" {
		req.Query = s.defaultQuery
	}

	// 1. Next-page requests relay straight to the provider.
	if !req.FirstPage() {
		page, err := s.provider.Fetch(ctx, req)
		if err != nil {
			return SearchPage{}, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		return SearchPage{Items: page.Items, ContinuationToken: page.ContinuationToken}, nil
	}

	key := Fingerprint(req)

	// 2. Try the store. A read failure is just a miss; search availability
	// wins over cache correctness.
	entry, err := s.store.Get(ctx, key)
	if err == nil && s.fresh(entry) {
		s.logger.Debug().Str("key", key).Msg("Serving search from cache.")
		return SearchPage{
			Items:             entry.Items,
			ContinuationToken: entry.ContinuationToken,
			ServedFromCache:   true,
		}, nil
	}
	if err != nil {
		s.logger.Debug().Err(err).Str("key", key).Msg("Cache read missed. Fetching upstream.")
	} else {
		s.logger.Debug().Str("key", key).Msg("Cache entry stale. Fetching upstream.")
	}

	// 3. Miss or stale: fetch upstream. A failed fetch leaves the store
	// untouched and is fatal to this request.
	page, err := s.provider.Fetch(ctx, req)
	if err != nil {
		return SearchPage{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	// 4. Upsert the full entry, overwriting whatever was there. The page is
	// returned even if the write fails; caching is an optimization.
	newEntry := CacheEntry{
		Items:             page.Items,
		ContinuationToken: page.ContinuationToken,
		FetchedAtMillis:   s.now().UnixMilli(),
		SourceQuery:       page.SourceQuery,
	}
	if writeErr := s.store.Put(ctx, key, newEntry); writeErr != nil {
		s.logger.Warn().Err(writeErr).Str("key", key).Msg("Failed to persist search result. Continuing without cache.")
	}

	return SearchPage{Items: page.Items, ContinuationToken: page.ContinuationToken}, nil
}

// fresh reports whether the entry's age at the current clock reading is
// strictly below the TTL.
func (s *Service) fresh(entry CacheEntry) bool {
	age := s.now().UnixMilli() - entry.FetchedAtMillis
	return age < s.ttl.Milliseconds()
}
