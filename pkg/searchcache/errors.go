package searchcache

import "errors"

var (
	// ErrUpstream marks a failed provider fetch. It is fatal to the current
	// search: no stale cache entry is substituted and nothing is written to
	// the store. Distinguishable from an empty result set, which is not an
	// error.
	ErrUpstream = errors.New("upstream search fetch failed")

	// ErrInvalidRequest marks a request the calling layer rejected before it
	// reached the provider, such as a malformed page size.
	ErrInvalidRequest = errors.New("invalid search request")
)
