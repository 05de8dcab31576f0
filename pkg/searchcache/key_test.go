package searchcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yadaporn-l/Papakjai/pkg/searchcache"
)

func TestFingerprint_Deterministic(t *testing.T) {
	base := searchcache.SearchRequest{
		Query:     "street food",
		Category:  "beach",
		Region:    "thailand",
		Duration:  "any",
		SortOrder: "relevance",
		PageSize:  24,
	}

	t.Run("identical fields map to the same key", func(t *testing.T) {
		other := base
		assert.Equal(t, searchcache.Fingerprint(base), searchcache.Fingerprint(other))
	})

	t.Run("page size does not influence the key", func(t *testing.T) {
		other := base
		other.PageSize = 50
		assert.Equal(t, searchcache.Fingerprint(base), searchcache.Fingerprint(other))
	})

	t.Run("continuation token does not influence the key", func(t *testing.T) {
		other := base
		other.ContinuationToken = "tok1"
		assert.Equal(t, searchcache.Fingerprint(base), searchcache.Fingerprint(other))
	})

	t.Run("each fingerprint field changes the key", func(t *testing.T) {
		variants := []searchcache.SearchRequest{
			{Query: "night market", Category: "beach", Region: "thailand", Duration: "any", SortOrder: "relevance"},
			{Query: "street food", Category: "mountain", Region: "thailand", Duration: "any", SortOrder: "relevance"},
			{Query: "street food", Category: "beach", Region: "japan", Duration: "any", SortOrder: "relevance"},
			{Query: "street food", Category: "beach", Region: "thailand", Duration: "short", SortOrder: "relevance"},
			{Query: "street food", Category: "beach", Region: "thailand", Duration: "any", SortOrder: "date"},
		}
		for _, v := range variants {
			assert.NotEqual(t, searchcache.Fingerprint(base), searchcache.Fingerprint(v))
		}
	})
}
