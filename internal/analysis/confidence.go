package analysis

import "github.com/sells-group/venture-check/internal/model"

// Weighting for the recomputed confidence score. The model's own
// estimate dominates, discounted by how much source data actually
// backed the analysis and by content-quality findings.
const (
	modelWeight        = 0.6
	completenessWeight = 0.4
	issuePenalty       = 0.02
	maxIssuePenalty    = 0.2
)

// RecomputeConfidence blends the model's self-reported confidence with
// observed data completeness and quality findings, returning a value
// clamped to [0, 1]. Models routinely report high confidence even when
// every source failed; this keeps the reported number honest.
func RecomputeConfidence(modelScore float64, data model.SourceData, issueCount int) float64 {
	completeness := dataCompleteness(data)

	penalty := float64(issueCount) * issuePenalty
	if penalty > maxIssuePenalty {
		penalty = maxIssuePenalty
	}

	score := modelWeight*clamp01(modelScore) + completenessWeight*completeness - penalty
	return clamp01(score)
}

// dataCompleteness is the fraction of requested sources that returned
// usable data.
func dataCompleteness(data model.SourceData) float64 {
	total, ok := 0, 0

	if data.Trends != nil {
		total++
		if data.Trends.Error == "" {
			ok++
		}
	}
	if data.Competitors != nil {
		total++
		if data.Competitors.Error == "" {
			ok++
		}
	}
	if data.Community != nil {
		total++
		if data.Community.Error == "" {
			ok++
		}
	}

	if total == 0 {
		return 0
	}
	return float64(ok) / float64(total)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
