package searchcache

import (
	"context"
	"encoding/json"
)

// SearchRequest describes one incoming video search. The filter fields are
// opaque to the cache; a value of "", "all" or "any" means the filter is not
// applied. ContinuationToken, when present, marks the request as a
// next-page fetch.
type SearchRequest struct {
	Query             string
	Category          string
	Region            string
	Duration          string
	SortOrder         string
	PageSize          int
	ContinuationToken string
}

// FirstPage reports whether this request is for the first page of results,
// which is the only kind of request the cache participates in.
func (r SearchRequest) FirstPage() bool {
	return r.ContinuationToken == ""
}

// SearchPage is the result of a search: one page of provider payloads and,
// when the provider has more results, the token to fetch the next page.
type SearchPage struct {
	Items             []json.RawMessage
	ContinuationToken string
	ServedFromCache   bool
}

// ProviderPage is what an upstream provider returns for a single fetch.
// SourceQuery is the fully-expanded query string the provider actually sent,
// kept for diagnostics.
type ProviderPage struct {
	Items             []json.RawMessage
	ContinuationToken string
	SourceQuery       string
}

// CacheEntry is the persisted record for one first-page result set.
type CacheEntry struct {
	Items             []json.RawMessage `firestore:"items" json:"items"`
	ContinuationToken string            `firestore:"continuationToken" json:"continuationToken"`
	FetchedAtMillis   int64             `firestore:"fetchedAtMillis" json:"fetchedAtMillis"`
	SourceQuery       string            `firestore:"sourceQuery" json:"sourceQuery"`
}

// Provider fetches a page of results from the upstream search API.
type Provider interface {
	Fetch(ctx context.Context, req SearchRequest) (ProviderPage, error)
}

// EntryStore persists cache entries by fingerprint. Get returns an error
// when the key is absent; Put is a full overwrite of any prior value under
// the key. The generic stores in pkg/cachestore satisfy this interface.
type EntryStore interface {
	Get(ctx context.Context, key string) (CacheEntry, error)
	Put(ctx context.Context, key string, entry CacheEntry) error
}
