// Package reddit provides a client for the public Reddit search API.
package reddit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultBaseURL   = "https://www.reddit.com"
	defaultUserAgent = "venture-check/1.0"
)

// Client searches Reddit posts via the unauthenticated JSON endpoint.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// SearchRequest holds parameters for GET /search.json.
type SearchRequest struct {
	Query string
	// Sort is "relevance", "new", "top", or "comments".
	Sort string
	// Time restricts results: "hour", "day", "week", "month", "year", "all".
	Time string
	// Limit caps the number of posts returned (max 100).
	Limit int
}

// SearchResponse is the Reddit listing envelope.
type SearchResponse struct {
	Kind string      `json:"kind"`
	Data ListingData `json:"data"`
}

// ListingData holds the listing children.
type ListingData struct {
	After    string  `json:"after"`
	Children []Child `json:"children"`
}

// Child wraps a single post.
type Child struct {
	Kind string `json:"kind"`
	Data Post   `json:"data"`
}

// Post is the subset of post fields the caller needs.
type Post struct {
	Title       string  `json:"title"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithUserAgent overrides the User-Agent header. Reddit throttles
// generic agents aggressively, so a descriptive one is required.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	baseURL      string
	userAgent    string
	retryBackoff time.Duration
	http         *http.Client
}

// NewClient creates a Reddit search client. No API key is needed for
// the public JSON endpoints.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL:      defaultBaseURL,
		userAgent:    defaultUserAgent,
		retryBackoff: 1 * time.Second,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// maxRetryAttempts bounds retries on transient failures (429, 5xx).
const maxRetryAttempts = 3

func retryableStatusCode(code int) bool {
	return code == http.StatusTooManyRequests ||
		code == http.StatusInternalServerError ||
		code == http.StatusBadGateway ||
		code == http.StatusServiceUnavailable
}

func (c *httpClient) retryDo(ctx context.Context, reqURL string) ([]byte, int, error) {
	backoff := c.retryBackoff

	var lastErr error
	for attempt := 1; attempt <= maxRetryAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, 0, eris.Wrap(err, "reddit: create request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = eris.Wrap(err, "reddit: send request")
			if attempt < maxRetryAttempts {
				select {
				case <-ctx.Done():
					return nil, 0, ctx.Err()
				case <-time.After(backoff):
				}
				backoff *= 2
				continue
			}
			return nil, 0, lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, resp.StatusCode, eris.Wrap(readErr, "reddit: read response")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxRetryAttempts {
			lastErr = eris.Errorf("reddit: status %d: %s", resp.StatusCode, string(body))
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			continue
		}

		return body, resp.StatusCode, nil
	}

	return nil, 0, lastErr
}

func (c *httpClient) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", req.Query)
	if req.Sort != "" {
		q.Set("sort", req.Sort)
	}
	if req.Time != "" {
		q.Set("t", req.Time)
	}
	if req.Limit > 0 {
		q.Set("limit", strconv.Itoa(req.Limit))
	}

	body, statusCode, err := c.retryDo(ctx, c.baseURL+"/search.json?"+q.Encode())
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, eris.Errorf("reddit: unexpected status %d: %s", statusCode, string(body))
	}

	var result SearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "reddit: unmarshal response")
	}

	return &result, nil
}
