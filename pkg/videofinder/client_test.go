package videofinder_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yadaporn-l/Papakjai/pkg/searchcache"
	"github.com/Yadaporn-l/Papakjai/pkg/videofinder"
)

func TestClient_Fetch(t *testing.T) {
	ctx := context.Background()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"items": [{"id": {"videoId": "abc"}}, {"id": {"videoId": "def"}}],
			"nextPageToken": "tok1"
		}`))
	}))
	defer server.Close()

	client, err := videofinder.New("test-key", zerolog.Nop(), videofinder.WithBaseURL(server.URL))
	require.NoError(t, err)

	page, err := client.Fetch(ctx, searchcache.SearchRequest{
		Query:     "street food",
		Category:  "beach",
		Region:    "thailand",
		Duration:  "short",
		SortOrder: "date",
		PageSize:  24,
	})
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.JSONEq(t, `{"id": {"videoId": "abc"}}`, string(page.Items[0]))
	assert.Equal(t, "tok1", page.ContinuationToken)
	assert.Equal(t, "street food beach thailand travel", page.SourceQuery)

	assert.Equal(t, "test-key", gotQuery.Get("key"))
	assert.Equal(t, "snippet", gotQuery.Get("part"))
	assert.Equal(t, "video", gotQuery.Get("type"))
	assert.Equal(t, "street food beach thailand travel", gotQuery.Get("q"))
	assert.Equal(t, "24", gotQuery.Get("maxResults"))
	assert.Equal(t, "date", gotQuery.Get("order"))
	assert.Equal(t, "short", gotQuery.Get("videoDuration"))
	assert.Empty(t, gotQuery.Get("pageToken"))
}

func TestClient_Fetch_SentinelFiltersAreOmitted(t *testing.T) {
	ctx := context.Background()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	defer server.Close()

	client, err := videofinder.New("test-key", zerolog.Nop(), videofinder.WithBaseURL(server.URL))
	require.NoError(t, err)

	page, err := client.Fetch(ctx, searchcache.SearchRequest{
		Query:     "temples",
		Category:  "all",
		Region:    "any",
		Duration:  "any",
		SortOrder: "all",
	})
	require.NoError(t, err)

	assert.Empty(t, page.Items)
	assert.Empty(t, page.ContinuationToken)
	assert.Equal(t, "temples", page.SourceQuery, "sentinel filters must not expand into keywords")
	assert.False(t, gotQuery.Has("order"))
	assert.False(t, gotQuery.Has("videoDuration"))
	assert.False(t, gotQuery.Has("maxResults"))
}

func TestClient_Fetch_PassesContinuationToken(t *testing.T) {
	ctx := context.Background()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"items": [{"id": "x"}]}`))
	}))
	defer server.Close()

	client, err := videofinder.New("test-key", zerolog.Nop(), videofinder.WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Fetch(ctx, searchcache.SearchRequest{Query: "temples", ContinuationToken: "tok2"})
	require.NoError(t, err)
	assert.Equal(t, "tok2", gotQuery.Get("pageToken"))
}

func TestClient_Fetch_ErrorStatus(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded"}}`))
	}))
	defer server.Close()

	client, err := videofinder.New("test-key", zerolog.Nop(), videofinder.WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Fetch(ctx, searchcache.SearchRequest{Query: "temples"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClient_Fetch_MalformedBody(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client, err := videofinder.New("test-key", zerolog.Nop(), videofinder.WithBaseURL(server.URL))
	require.NoError(t, err)

	_, err = client.Fetch(ctx, searchcache.SearchRequest{Query: "temples"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := videofinder.New("", zerolog.Nop())
	assert.Error(t, err)
}
