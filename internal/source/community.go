package source

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/model"
	"github.com/sells-group/venture-check/pkg/reddit"
)

const (
	communityWindow   = "month"
	communitySort     = "new"
	maxSamplePosts    = 5
	maxTopSubreddits  = 5
	broaderQueryTerms = 3
)

// CommunitySource measures discussion activity around the idea on Reddit.
type CommunitySource struct {
	client reddit.Client
	limit  int
}

// NewCommunitySource creates the community adapter. A nil client marks
// the source unavailable.
func NewCommunitySource(client reddit.Client, limit int) *CommunitySource {
	if limit <= 0 {
		limit = 50
	}
	return &CommunitySource{client: client, limit: limit}
}

// Name identifies the source in status maps.
func (s *CommunitySource) Name() string { return model.SourceCommunity }

// Available reports whether the adapter is configured.
func (s *CommunitySource) Available() bool { return s.client != nil }

// Fetch returns recent community activity for the idea. Failures are
// folded into the payload's Error field, never returned.
func (s *CommunitySource) Fetch(ctx context.Context, idea string) *model.CommunityData {
	phrase := NormalizeQuery(idea)
	data := &model.CommunityData{
		Query:        idea,
		SearchPhrase: phrase,
	}

	if !s.Available() {
		data.Error = "community source not configured"
		return data
	}

	resp, err := s.search(ctx, phrase)
	if err != nil || len(resp.Data.Children) == 0 {
		// Broaden the phrase before concluding nobody talks about this.
		broader := BroaderQuery(phrase, broaderQueryTerms)
		if broader == phrase {
			if err != nil {
				data.Error = err.Error()
				return data
			}
		} else {
			if err != nil {
				zap.L().Warn("community search failed, trying broader phrase",
					zap.String("phrase", phrase),
					zap.Error(err),
				)
			}
			altResp, altErr := s.search(ctx, broader)
			if altErr != nil {
				if err == nil {
					err = altErr
				}
				data.Error = err.Error()
				return data
			}
			resp = altResp
			data.SearchPhrase = broader
			data.UsedFallback = true
		}
	}

	fillCommunity(data, resp.Data.Children)
	return data
}

func (s *CommunitySource) search(ctx context.Context, phrase string) (*reddit.SearchResponse, error) {
	return s.client.Search(ctx, reddit.SearchRequest{
		Query: phrase,
		Sort:  communitySort,
		Time:  communityWindow,
		Limit: s.limit,
	})
}

func fillCommunity(data *model.CommunityData, children []reddit.Child) {
	data.PostCount = len(children)
	if len(children) == 0 {
		return
	}

	subCounts := map[string]int{}
	for _, c := range children {
		data.TotalScore += c.Data.Score
		data.TotalComments += c.Data.NumComments
		subCounts[c.Data.Subreddit]++
	}
	data.AvgScore = float64(data.TotalScore) / float64(len(children))
	data.AvgComments = float64(data.TotalComments) / float64(len(children))

	for name, posts := range subCounts {
		data.TopSubreddits = append(data.TopSubreddits, model.SubredditActivity{
			Name:  name,
			Posts: posts,
		})
	}
	sort.Slice(data.TopSubreddits, func(i, j int) bool {
		a, b := data.TopSubreddits[i], data.TopSubreddits[j]
		if a.Posts != b.Posts {
			return a.Posts > b.Posts
		}
		return a.Name < b.Name
	})
	if len(data.TopSubreddits) > maxTopSubreddits {
		data.TopSubreddits = data.TopSubreddits[:maxTopSubreddits]
	}

	for i, c := range children {
		if i == maxSamplePosts {
			break
		}
		data.SamplePosts = append(data.SamplePosts, model.CommunityPost{
			Title:       c.Data.Title,
			Subreddit:   c.Data.Subreddit,
			Score:       c.Data.Score,
			NumComments: c.Data.NumComments,
			URL:         "https://www.reddit.com" + c.Data.Permalink,
			CreatedUTC:  int64(c.Data.CreatedUTC),
		})
	}
}
