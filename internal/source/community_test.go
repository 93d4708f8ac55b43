package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venture-check/pkg/reddit"
)

// stubRedditClient returns canned listings keyed by query phrase.
type stubRedditClient struct {
	byQuery map[string][]reddit.Post
	err     error
	errFor  string
	calls   []reddit.SearchRequest
}

func (s *stubRedditClient) Search(_ context.Context, req reddit.SearchRequest) (*reddit.SearchResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.errFor != "" && req.Query == s.errFor {
		return nil, errors.New("reddit: unexpected status 500")
	}
	children := make([]reddit.Child, 0, len(s.byQuery[req.Query]))
	for _, p := range s.byQuery[req.Query] {
		children = append(children, reddit.Child{Kind: "t3", Data: p})
	}
	return &reddit.SearchResponse{
		Kind: "Listing",
		Data: reddit.ListingData{Children: children},
	}, nil
}

func TestCommunityFetch_Aggregates(t *testing.T) {
	stub := &stubRedditClient{byQuery: map[string][]reddit.Post{
		"ai meal planning": {
			{Title: "Anyone using AI to plan meals?", Subreddit: "MealPrepSunday", Score: 120, NumComments: 44, Permalink: "/r/MealPrepSunday/comments/abc/", CreatedUTC: 1755900000},
			{Title: "Built a meal planner bot", Subreddit: "SideProject", Score: 80, NumComments: 16, Permalink: "/r/SideProject/comments/def/", CreatedUTC: 1755910000},
			{Title: "Meal planning fatigue is real", Subreddit: "MealPrepSunday", Score: 40, NumComments: 12, Permalink: "/r/MealPrepSunday/comments/ghi/", CreatedUTC: 1755920000},
		},
	}}
	src := NewCommunitySource(stub, 50)

	data := src.Fetch(context.Background(), "AI meal planning")
	require.Empty(t, data.Error)
	assert.Equal(t, 3, data.PostCount)
	assert.Equal(t, 240, data.TotalScore)
	assert.Equal(t, 72, data.TotalComments)
	assert.Equal(t, 80.0, data.AvgScore)
	assert.Equal(t, 24.0, data.AvgComments)
	assert.False(t, data.UsedFallback)

	require.Len(t, data.TopSubreddits, 2)
	assert.Equal(t, "MealPrepSunday", data.TopSubreddits[0].Name)
	assert.Equal(t, 2, data.TopSubreddits[0].Posts)

	require.Len(t, data.SamplePosts, 3)
	assert.Equal(t, "https://www.reddit.com/r/MealPrepSunday/comments/abc/", data.SamplePosts[0].URL)
	assert.Equal(t, int64(1755900000), data.SamplePosts[0].CreatedUTC)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, communitySort, stub.calls[0].Sort)
	assert.Equal(t, communityWindow, stub.calls[0].Time)
	assert.Equal(t, 50, stub.calls[0].Limit)
}

func TestCommunityFetch_BroaderQueryFallback(t *testing.T) {
	stub := &stubRedditClient{byQuery: map[string][]reddit.Post{
		// Full phrase finds nothing; the first three terms do.
		"subscription box vintage vinyl records": {},
		"subscription box vintage": {
			{Title: "Vinyl subscription boxes worth it?", Subreddit: "vinyl", Score: 15, NumComments: 9, Permalink: "/r/vinyl/comments/xyz/"},
		},
	}}
	src := NewCommunitySource(stub, 25)

	data := src.Fetch(context.Background(), "a subscription box for vintage vinyl records")
	require.Empty(t, data.Error)
	assert.True(t, data.UsedFallback)
	assert.Equal(t, "subscription box vintage", data.SearchPhrase)
	assert.Equal(t, 1, data.PostCount)
	require.Len(t, stub.calls, 2)
}

func TestCommunityFetch_FallbackAfterPrimaryError(t *testing.T) {
	stub := &stubRedditClient{
		errFor: "subscription box vintage vinyl records",
		byQuery: map[string][]reddit.Post{
			"subscription box vintage": {
				{Title: "Recovered via broader search", Subreddit: "vinyl", Score: 5, NumComments: 2, Permalink: "/r/vinyl/comments/rec/"},
			},
		},
	}
	src := NewCommunitySource(stub, 25)

	data := src.Fetch(context.Background(), "a subscription box for vintage vinyl records")
	require.Empty(t, data.Error)
	assert.True(t, data.UsedFallback)
	assert.Equal(t, 1, data.PostCount)
	require.Len(t, stub.calls, 2)
}

func TestCommunityFetch_NoFallbackForShortPhrase(t *testing.T) {
	stub := &stubRedditClient{byQuery: map[string][]reddit.Post{}}
	src := NewCommunitySource(stub, 25)

	data := src.Fetch(context.Background(), "dog walking")
	require.Empty(t, data.Error)
	assert.False(t, data.UsedFallback)
	assert.Zero(t, data.PostCount)
	// Phrase already at or below the broadened length, so one call only.
	require.Len(t, stub.calls, 1)
}

func TestCommunityFetch_TopSubredditsCapped(t *testing.T) {
	posts := []reddit.Post{
		{Subreddit: "alpha", Score: 1}, {Subreddit: "bravo", Score: 1},
		{Subreddit: "charlie", Score: 1}, {Subreddit: "delta", Score: 1},
		{Subreddit: "echo", Score: 1}, {Subreddit: "foxtrot", Score: 1},
		{Subreddit: "alpha", Score: 1},
	}
	stub := &stubRedditClient{byQuery: map[string][]reddit.Post{
		"crowded topic": posts,
	}}
	src := NewCommunitySource(stub, 50)

	data := src.Fetch(context.Background(), "crowded topic")
	require.Empty(t, data.Error)
	require.Len(t, data.TopSubreddits, maxTopSubreddits)
	assert.Equal(t, "alpha", data.TopSubreddits[0].Name)
	require.Len(t, data.SamplePosts, maxSamplePosts)
}

func TestCommunityFetch_ErrorAsData(t *testing.T) {
	stub := &stubRedditClient{err: errors.New("reddit: unexpected status 403")}
	src := NewCommunitySource(stub, 50)

	data := src.Fetch(context.Background(), "anything")
	assert.Contains(t, data.Error, "status 403")
	assert.Zero(t, data.PostCount)
	assert.Empty(t, data.SamplePosts)
}

func TestCommunityFetch_NotConfigured(t *testing.T) {
	src := NewCommunitySource(nil, 0)
	assert.False(t, src.Available())

	data := src.Fetch(context.Background(), "anything")
	assert.Contains(t, data.Error, "not configured")
}
