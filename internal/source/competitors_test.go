package source

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venture-check/pkg/tavily"
)

// stubTavilyClient returns canned results keyed by query substring.
type stubTavilyClient struct {
	results map[string][]tavily.SearchResult
	err     error
	errFor  string
	calls   []string
}

func (s *stubTavilyClient) Search(_ context.Context, req tavily.SearchRequest) (*tavily.SearchResponse, error) {
	s.calls = append(s.calls, req.Query)
	if s.err != nil {
		return nil, s.err
	}
	if s.errFor != "" && strings.Contains(req.Query, s.errFor) {
		return nil, errors.New("tavily: unexpected status 502")
	}
	for key, results := range s.results {
		if strings.Contains(req.Query, key) {
			return &tavily.SearchResponse{Query: req.Query, Results: results}, nil
		}
	}
	return &tavily.SearchResponse{Query: req.Query}, nil
}

func TestCompetitorFetch(t *testing.T) {
	stub := &stubTavilyClient{results: map[string][]tavily.SearchResult{
		"competitors alternatives": {
			{Title: "Mealime", URL: "https://www.mealime.com/features", Content: "Meal planning made easy", Score: 0.95},
			{Title: "Eat This Much", URL: "https://eatthismuch.com", Content: "Automatic meal planner", Score: 0.91},
			{Title: "Blog post", URL: "https://blog.mealime.com/why-plan", Content: "duplicate domain", Score: 0.8},
			{Title: "Best apps thread", URL: "https://www.reddit.com/r/mealprep/comments/1", Content: "aggregator", Score: 0.7},
		},
	}}
	src := NewCompetitorSource(stub, 10)

	data := src.Fetch(context.Background(), "AI meal planning assistant")
	require.Empty(t, data.Error)
	assert.Equal(t, []string{"mealime.com", "eatthismuch.com"}, data.TopDomains)
	assert.Equal(t, 2, data.CompetitorCount)
	// reddit.com filtered, blog.mealime.com collapsed into mealime.com
	require.Len(t, data.Results, 3)
	assert.Equal(t, "mealime.com", data.Results[0].Domain)
	assert.False(t, data.UsedFallback)
	assert.GreaterOrEqual(t, data.SearchSeconds, 0.0)
}

func TestCompetitorFetch_SnippetTruncated(t *testing.T) {
	long := strings.Repeat("x", 500)
	stub := &stubTavilyClient{results: map[string][]tavily.SearchResult{
		"competitors": {{Title: "T", URL: "https://example.com", Content: long}},
	}}
	src := NewCompetitorSource(stub, 10)

	data := src.Fetch(context.Background(), "idea")
	require.Len(t, data.Results, 1)
	assert.Len(t, data.Results[0].Snippet, snippetPreviewLen)
}

func TestCompetitorFetch_FallbackQuery(t *testing.T) {
	stub := &stubTavilyClient{results: map[string][]tavily.SearchResult{
		"companies": {
			{Title: "NicheCo", URL: "https://nicheco.io", Content: "only shows up for plain query"},
		},
	}}
	src := NewCompetitorSource(stub, 10)

	data := src.Fetch(context.Background(), "obscure vertical tool")
	require.Empty(t, data.Error)
	assert.True(t, data.UsedFallback)
	assert.Contains(t, data.SearchPhrase, "companies")
	assert.Equal(t, []string{"nicheco.io"}, data.TopDomains)
	require.Len(t, stub.calls, 2)
}

func TestCompetitorFetch_FallbackAfterPrimaryError(t *testing.T) {
	stub := &stubTavilyClient{
		errFor: "competitors alternatives",
		results: map[string][]tavily.SearchResult{
			"companies": {{Title: "NicheCo", URL: "https://nicheco.io", Content: "recovered via fallback"}},
		},
	}
	src := NewCompetitorSource(stub, 10)

	data := src.Fetch(context.Background(), "obscure vertical tool")
	require.Empty(t, data.Error)
	assert.True(t, data.UsedFallback)
	assert.Equal(t, []string{"nicheco.io"}, data.TopDomains)
	require.Len(t, stub.calls, 2)
}

func TestCompetitorFetch_ErrorAsData(t *testing.T) {
	stub := &stubTavilyClient{err: errors.New("tavily: unexpected status 401")}
	src := NewCompetitorSource(stub, 10)

	data := src.Fetch(context.Background(), "anything")
	assert.Contains(t, data.Error, "status 401")
	assert.Zero(t, data.CompetitorCount)
	assert.NotNil(t, data.TopDomains)
}

func TestCompetitorFetch_NotConfigured(t *testing.T) {
	src := NewCompetitorSource(nil, 0)
	assert.False(t, src.Available())

	data := src.Fetch(context.Background(), "anything")
	assert.Contains(t, data.Error, "not configured")
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.mealime.com/features", "mealime.com"},
		{"https://blog.example.co/post", "example.co"},
		{"https://example.com:8080/x", "example.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractDomain(tt.raw), tt.raw)
	}
}
