// Package cachestore provides generic key-value document stores used to
// persist cached search results across process restarts. Each store offers
// plain get/put-overwrite semantics on a single key; there is no eviction
// and no cross-key coordination.
package cachestore

import "errors"

// ErrNotFound is returned by Get when no document exists under the key.
// Callers distinguish it from genuine store failures with errors.Is.
var ErrNotFound = errors.New("entry not found")
