package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/venture-check/internal/model"
)

func allSourcesOK() model.SourceData {
	return model.SourceData{
		Trends:      &model.TrendsData{},
		Competitors: &model.CompetitorData{},
		Community:   &model.CommunityData{},
	}
}

func TestRecomputeConfidence_Blend(t *testing.T) {
	// 0.6*0.9 + 0.4*1.0 = 0.94 with full data and no findings.
	got := RecomputeConfidence(0.9, allSourcesOK(), 0)
	assert.InDelta(t, 0.94, got, 1e-9)
}

func TestRecomputeConfidence_PartialData(t *testing.T) {
	data := allSourcesOK()
	data.Trends.Error = "status 500"
	data.Community.Error = "status 403"

	// Completeness 1/3: 0.6*0.9 + 0.4*(1/3) = 0.673...
	got := RecomputeConfidence(0.9, data, 0)
	assert.InDelta(t, 0.54+0.4/3.0, got, 1e-9)
}

func TestRecomputeConfidence_IssuePenaltyCapped(t *testing.T) {
	few := RecomputeConfidence(0.9, allSourcesOK(), 5)
	assert.InDelta(t, 0.94-0.10, few, 1e-9)

	// 50 issues would be a 1.0 penalty uncapped; it clamps at 0.2.
	many := RecomputeConfidence(0.9, allSourcesOK(), 50)
	assert.InDelta(t, 0.94-0.20, many, 1e-9)
}

func TestRecomputeConfidence_NoSources(t *testing.T) {
	// No sources requested means zero completeness, not a divide by zero.
	got := RecomputeConfidence(1.0, model.SourceData{}, 0)
	assert.InDelta(t, 0.6, got, 1e-9)
}

func TestRecomputeConfidence_Clamped(t *testing.T) {
	assert.Equal(t, 0.0, RecomputeConfidence(-3.0, model.SourceData{}, 50))

	// Out-of-range model scores clamp before weighting.
	high := RecomputeConfidence(5.0, allSourcesOK(), 0)
	assert.InDelta(t, 1.0, high, 1e-9)
}
