package reddit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *httpClient {
	c := NewClient(WithBaseURL(baseURL)).(*httpClient)
	c.retryBackoff = 1 * time.Millisecond
	return c
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/search.json", r.URL.Path)
		assert.Equal(t, "meal planning app", r.URL.Query().Get("q"))
		assert.Equal(t, "new", r.URL.Query().Get("sort"))
		assert.Equal(t, "month", r.URL.Query().Get("t"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"kind": "Listing",
			"data": {
				"after": "t3_abc",
				"children": [
					{"kind": "t3", "data": {"title": "Best meal planning apps?", "subreddit": "mealprep", "score": 124, "num_comments": 37, "permalink": "/r/mealprep/comments/abc/", "created_utc": 1779984000}},
					{"kind": "t3", "data": {"title": "Built a meal planner", "subreddit": "SideProject", "score": 56, "num_comments": 12, "permalink": "/r/SideProject/comments/def/", "created_utc": 1780070400}}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	resp, err := client.Search(context.Background(), SearchRequest{
		Query: "meal planning app",
		Sort:  "new",
		Time:  "month",
		Limit: 50,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Data.Children, 2)
	assert.Equal(t, "Best meal planning apps?", resp.Data.Children[0].Data.Title)
	assert.Equal(t, "mealprep", resp.Data.Children[0].Data.Subreddit)
	assert.Equal(t, 124, resp.Data.Children[0].Data.Score)
	assert.Equal(t, 37, resp.Data.Children[0].Data.NumComments)
}

func TestSearch_OmitsEmptyParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, param := range []string{"sort", "t", "limit"} {
			_, has := r.URL.Query()[param]
			assert.False(t, has, "%s should be omitted when unset", param)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[]}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)
}

func TestSearch_CustomUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "my-bot/2.0", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[]}}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithUserAgent("my-bot/2.0")).(*httpClient)
	c.retryBackoff = 1 * time.Millisecond
	_, err := c.Search(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)
}

func TestSearch_Retries429(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":429}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"Listing","data":{"children":[]}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestSearch_ExhaustsRetries(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"service unavailable"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(maxRetryAttempts), attempts.Load())
}

func TestSearch_NoRetryOn403(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"blocked"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Equal(t, int32(1), attempts.Load())
}

func TestSearch_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>blocked</html>`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Search(context.Background(), SearchRequest{Query: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient()
	hc := c.(*httpClient)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.Equal(t, defaultUserAgent, hc.userAgent)
	assert.NotNil(t, hc.http)
}
