package searchcache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// keySeparator joins the fingerprint fields. The field order is fixed:
// query, category, region, duration, sortOrder. PageSize and the
// continuation token are deliberately excluded so that every first-page
// request for the same search maps to the same key.
const keySeparator = "|"

// Fingerprint computes the cache key for a request. The joined field string
// is hashed so the key is safe to use as a document ID regardless of what
// characters the query contains. Callers must normalize the query (default
// substitution) before fingerprinting; the service does this in Search.
func Fingerprint(req SearchRequest) string {
	joined := strings.Join([]string{
		req.Query,
		req.Category,
		req.Region,
		req.Duration,
		req.SortOrder,
	}, keySeparator)
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
