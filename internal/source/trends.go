package source

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/model"
	"github.com/sells-group/venture-check/pkg/trends"
)

// Timeframes tried in order: the primary window first, then a wider
// one when the primary returns no data points.
const (
	primaryTimeframe  = "today 3-m"
	fallbackTimeframe = "today 12-m"
)

// TrendsSource fetches search interest data from Google Trends.
type TrendsSource struct {
	client trends.Client
	geo    string
}

// NewTrendsSource creates the trends adapter. A nil client marks the
// source unavailable.
func NewTrendsSource(client trends.Client, geo string) *TrendsSource {
	return &TrendsSource{client: client, geo: geo}
}

// Name identifies the source in status maps.
func (s *TrendsSource) Name() string { return model.SourceTrends }

// Available reports whether the adapter is configured.
func (s *TrendsSource) Available() bool { return s.client != nil }

// Fetch returns search interest for the idea. Failures are folded into
// the payload's Error field, never returned.
func (s *TrendsSource) Fetch(ctx context.Context, idea string) *model.TrendsData {
	phrase := NormalizeQuery(idea)
	data := &model.TrendsData{
		Query:        idea,
		SearchPhrase: phrase,
		Timeframe:    primaryTimeframe,
	}

	if !s.Available() {
		data.Error = "trends source not configured"
		return data
	}

	points, err := s.interest(ctx, phrase, primaryTimeframe)
	if err != nil || len(points) == 0 {
		// Errored or nothing in the short window; widen before giving up.
		if err != nil {
			zap.L().Warn("trends fetch failed, trying wider window",
				zap.String("phrase", phrase),
				zap.Error(err),
			)
		}
		fbPoints, fbErr := s.interest(ctx, phrase, fallbackTimeframe)
		if fbErr != nil {
			if err == nil {
				err = fbErr
			}
			data.Error = err.Error()
			return data
		}
		points = fbPoints
		data.Timeframe = fallbackTimeframe
		data.UsedFallback = true
	}

	if len(points) == 0 {
		data.TrendDirection = "no_data"
		return data
	}

	fillSeries(data, points)
	return data
}

func (s *TrendsSource) interest(ctx context.Context, phrase, timeframe string) ([]int, error) {
	resp, err := s.client.InterestOverTime(ctx, trends.InterestRequest{
		Query: phrase,
		Date:  timeframe,
		Geo:   s.geo,
	})
	if err != nil {
		return nil, err
	}

	points := make([]int, 0, len(resp.InterestOverTime.TimelineData))
	for _, p := range resp.InterestOverTime.TimelineData {
		if len(p.Values) > 0 {
			points = append(points, p.Values[0].ExtractedValue)
		}
	}
	return points, nil
}

// fillSeries derives the summary metrics from the raw interest series.
func fillSeries(data *model.TrendsData, points []int) {
	data.DataPoints = len(points)

	sum, minV, maxV := 0, points[0], points[0]
	for _, v := range points {
		sum += v
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	data.InterestScore = float64(sum) / float64(len(points))
	data.MinScore = minV
	data.MaxScore = maxV

	// Compare the last third of the series against the first third to
	// classify direction; the ratio doubles as velocity.
	third := len(points) / 3
	if third == 0 {
		data.TrendDirection = "stable"
		return
	}

	early, late := 0, 0
	for _, v := range points[:third] {
		early += v
	}
	for _, v := range points[len(points)-third:] {
		late += v
	}
	earlyAvg := float64(early) / float64(third)
	lateAvg := float64(late) / float64(third)

	// Movement of exactly 10% either way still counts as stable; only
	// strictly larger swings change the direction.
	switch {
	case earlyAvg == 0 && lateAvg > 0:
		data.TrendDirection = "rising"
		data.TrendVelocity = 1.0
	case earlyAvg == 0:
		data.TrendDirection = "stable"
	case lateAvg > earlyAvg*1.1:
		data.TrendDirection = "rising"
		data.TrendVelocity = (lateAvg - earlyAvg) / earlyAvg
	case lateAvg < earlyAvg*0.9:
		data.TrendDirection = "declining"
		data.TrendVelocity = (lateAvg - earlyAvg) / earlyAvg
	default:
		data.TrendDirection = "stable"
		data.TrendVelocity = (lateAvg - earlyAvg) / earlyAvg
	}
}
