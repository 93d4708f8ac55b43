package source

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/model"
	"github.com/sells-group/venture-check/pkg/tavily"
)

// nonCompetitorDomains are aggregators and reference sites that show up
// in nearly every search but are never actual competitors.
var nonCompetitorDomains = map[string]bool{
	"wikipedia.org":   true,
	"reddit.com":      true,
	"quora.com":       true,
	"medium.com":      true,
	"youtube.com":     true,
	"linkedin.com":    true,
	"facebook.com":    true,
	"twitter.com":     true,
	"x.com":           true,
	"producthunt.com": true,
	"crunchbase.com":  true,
	"g2.com":          true,
	"capterra.com":    true,
	"trustpilot.com":  true,
	"ycombinator.com": true,
}

const snippetPreviewLen = 200

// CompetitorSource discovers existing solutions via web search.
type CompetitorSource struct {
	client     tavily.Client
	maxResults int
}

// NewCompetitorSource creates the competitor-search adapter. A nil
// client marks the source unavailable.
func NewCompetitorSource(client tavily.Client, maxResults int) *CompetitorSource {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &CompetitorSource{client: client, maxResults: maxResults}
}

// Name identifies the source in status maps.
func (s *CompetitorSource) Name() string { return model.SourceCompetitors }

// Available reports whether the adapter is configured.
func (s *CompetitorSource) Available() bool { return s.client != nil }

// Fetch searches for existing solutions to the idea. Failures are
// folded into the payload's Error field, never returned.
func (s *CompetitorSource) Fetch(ctx context.Context, idea string) *model.CompetitorData {
	phrase := NormalizeQuery(idea) + " competitors alternatives"
	data := &model.CompetitorData{
		Query:        idea,
		SearchPhrase: phrase,
		TopDomains:   []string{},
	}

	if !s.Available() {
		data.Error = "competitor source not configured"
		return data
	}

	start := time.Now()
	resp, err := s.search(ctx, phrase)
	if err != nil || len(resp.Results) == 0 {
		// Errored or zero hits; retry with a plainer phrasing before
		// reporting no competitors.
		if err != nil {
			zap.L().Warn("competitor search failed, trying broader phrase",
				zap.String("phrase", phrase),
				zap.Error(err),
			)
		}
		alt := NormalizeQuery(idea) + " companies"
		altResp, altErr := s.search(ctx, alt)
		if altErr != nil {
			if err == nil {
				err = altErr
			}
			data.Error = err.Error()
			return data
		}
		resp = altResp
		data.SearchPhrase = alt
		data.UsedFallback = true
	}

	data.SearchSeconds = time.Since(start).Seconds()
	fillCompetitors(data, resp.Results)
	return data
}

func (s *CompetitorSource) search(ctx context.Context, phrase string) (*tavily.SearchResponse, error) {
	return s.client.Search(ctx, tavily.SearchRequest{
		Query:       phrase,
		MaxResults:  s.maxResults,
		SearchDepth: "basic",
	})
}

func fillCompetitors(data *model.CompetitorData, results []tavily.SearchResult) {
	seen := map[string]bool{}
	for _, r := range results {
		domain := extractDomain(r.URL)
		if domain == "" || nonCompetitorDomains[domain] {
			continue
		}

		snippet := r.Content
		if len(snippet) > snippetPreviewLen {
			snippet = snippet[:snippetPreviewLen]
		}
		data.Results = append(data.Results, model.CompetitorHit{
			Title:   r.Title,
			URL:     r.URL,
			Domain:  domain,
			Snippet: snippet,
		})

		if !seen[domain] {
			seen[domain] = true
			data.TopDomains = append(data.TopDomains, domain)
		}
	}
	data.CompetitorCount = len(data.TopDomains)
}

// extractDomain returns the registrable host of a URL without the
// leading www.
func extractDomain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	host := strings.ToLower(u.Host)
	if h, _, found := strings.Cut(host, ":"); found {
		host = h
	}
	host = strings.TrimPrefix(host, "www.")

	// Collapse subdomains so blog.example.com and example.com dedupe.
	parts := strings.Split(host, ".")
	if len(parts) > 2 {
		host = strings.Join(parts[len(parts)-2:], ".")
	}
	return host
}
