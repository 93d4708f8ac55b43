// Package trends provides a client for the SerpApi Google Trends engine.
package trends

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://serpapi.com"

// Client fetches interest-over-time series from Google Trends via SerpApi.
type Client interface {
	InterestOverTime(ctx context.Context, req InterestRequest) (*InterestResponse, error)
}

// InterestRequest identifies a query and timeframe for the TIMESERIES
// data type.
type InterestRequest struct {
	// Query is the search phrase (comma-free, up to five terms).
	Query string
	// Date is a SerpApi timeframe expression such as "today 3-m" or
	// "today 12-m". Empty defaults to "today 12-m" server-side.
	Date string
	// Geo is an optional two-letter region code.
	Geo string
}

// InterestResponse is the subset of the SerpApi response the caller needs.
type InterestResponse struct {
	SearchMetadata   SearchMetadata   `json:"search_metadata"`
	InterestOverTime InterestOverTime `json:"interest_over_time"`
}

// SearchMetadata reports request status and timing.
type SearchMetadata struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	TotalTimeTaken float64 `json:"total_time_taken"`
}

// InterestOverTime holds the timeline series.
type InterestOverTime struct {
	TimelineData []TimelinePoint `json:"timeline_data"`
}

// TimelinePoint is one sample in the interest series.
type TimelinePoint struct {
	Date      string          `json:"date"`
	Timestamp string          `json:"timestamp"`
	Values    []TimelineValue `json:"values"`
}

// TimelineValue is the interest value for one query at one point.
type TimelineValue struct {
	Query          string `json:"query"`
	Value          string `json:"value"`
	ExtractedValue int    `json:"extracted_value"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey       string
	baseURL      string
	retryBackoff time.Duration
	http         *http.Client
}

// NewClient creates a SerpApi Google Trends client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:       apiKey,
		baseURL:      defaultBaseURL,
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
			return nil, 0, eris.Wrap(err, "trends: create request")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = eris.Wrap(err, "trends: send request")
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
			return nil, resp.StatusCode, eris.Wrap(readErr, "trends: read response")
		}

		if retryableStatusCode(resp.StatusCode) && attempt < maxRetryAttempts {
			lastErr = eris.Errorf("trends: status %d: %s", resp.StatusCode, string(body))
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

func (c *httpClient) InterestOverTime(ctx context.Context, req InterestRequest) (*InterestResponse, error) {
	q := url.Values{}
	q.Set("engine", "google_trends")
	q.Set("data_type", "TIMESERIES")
	q.Set("q", req.Query)
	q.Set("api_key", c.apiKey)
	if req.Date != "" {
		q.Set("date", req.Date)
	}
	if req.Geo != "" {
		q.Set("geo", req.Geo)
	}

	body, statusCode, err := c.retryDo(ctx, c.baseURL+"/search.json?"+q.Encode())
	if err != nil {
		return nil, err
	}

	if statusCode != http.StatusOK {
		return nil, eris.Errorf("trends: unexpected status %d: %s", statusCode, string(body))
	}

	var result InterestResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, eris.Wrap(err, "trends: unmarshal response")
	}

	return &result, nil
}
