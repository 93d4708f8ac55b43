package model

// Per-source payloads. Every adapter returns one of these on both success
// and failure: a failed fetch sets Error and leaves metrics zero-valued
// instead of omitting fields, so downstream consumers never see nulls.

// TrendsData holds search-interest metrics for an idea.
type TrendsData struct {
	Query          string  `json:"query"`
	SearchPhrase   string  `json:"search_phrase,omitempty"`
	Timeframe      string  `json:"timeframe,omitempty"`
	InterestScore  float64 `json:"interest_score"`
	TrendDirection string  `json:"trend_direction"`
	TrendVelocity  float64 `json:"trend_velocity"`
	DataPoints     int     `json:"data_points,omitempty"`
	MinScore       int     `json:"min_score,omitempty"`
	MaxScore       int     `json:"max_score,omitempty"`
	UsedFallback   bool    `json:"used_fallback,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// CompetitorHit is one processed search result from competitor research.
type CompetitorHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Domain  string `json:"domain"`
	Snippet string `json:"content_preview,omitempty"`
}

// CompetitorData holds competitor-search metrics for an idea.
type CompetitorData struct {
	Query           string          `json:"query"`
	SearchPhrase    string          `json:"search_query,omitempty"`
	TopDomains      []string        `json:"top_domains"`
	CompetitorCount int             `json:"competitor_count"`
	Results         []CompetitorHit `json:"raw_results,omitempty"`
	SearchSeconds   float64         `json:"search_time,omitempty"`
	UsedFallback    bool            `json:"used_fallback,omitempty"`
	Error           string          `json:"error,omitempty"`
}

// SubredditActivity counts recent posts in one subreddit.
type SubredditActivity struct {
	Name  string `json:"name"`
	Posts int    `json:"posts"`
}

// CommunityPost is one recent community post matching the idea.
type CommunityPost struct {
	Title       string `json:"title"`
	Subreddit   string `json:"subreddit"`
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	URL         string `json:"url"`
	CreatedUTC  int64  `json:"created_utc"`
}

// CommunityData holds community-activity metrics for an idea.
type CommunityData struct {
	Query         string              `json:"query"`
	SearchPhrase  string              `json:"search_query,omitempty"`
	PostCount     int                 `json:"posts_last_n_days"`
	TotalScore    int                 `json:"total_score"`
	TotalComments int                 `json:"total_comments"`
	AvgScore      float64             `json:"avg_score,omitempty"`
	AvgComments   float64             `json:"avg_comments,omitempty"`
	TopSubreddits []SubredditActivity `json:"top_subreddits,omitempty"`
	SamplePosts   []CommunityPost     `json:"sample_posts,omitempty"`
	UsedFallback  bool                `json:"used_fallback,omitempty"`
	Error         string              `json:"error,omitempty"`
}

// SourceData aggregates the raw per-source payloads for one validation
// run. A nil entry means that source was not requested; a non-nil entry
// with Error set means the source was attempted and failed.
type SourceData struct {
	Trends      *TrendsData     `json:"trends,omitempty"`
	Competitors *CompetitorData `json:"competitors,omitempty"`
	Community   *CommunityData  `json:"community,omitempty"`
}

// Source names used in availability maps and context rendering.
const (
	SourceTrends      = "trends"
	SourceCompetitors = "competitors"
	SourceCommunity   = "community"
	SourceLLM         = "llm"
)
