package model

import "time"

// FailureVerdict is the fixed market verdict used when analysis could not
// be produced. Callers can compare against it to detect the placeholder.
const FailureVerdict = "Analysis Failed"

// ComprehensiveAnalysis is the structured business-validation report the
// LLM must produce. Eight required sections; the validator guarantees each
// section and its critical fields are present before this type is decoded.
type ComprehensiveAnalysis struct {
	Metadata        AnalysisMetadata         `json:"analysis_metadata"`
	Market          MarketAssessment         `json:"market_assessment"`
	Competitive     CompetitiveLandscape     `json:"competitive_landscape"`
	Uniqueness      UniquenessAnalysis       `json:"uniqueness_analysis"`
	Viability       BusinessViability        `json:"business_viability"`
	Risk            RiskAssessment           `json:"risk_assessment"`
	Roadmap         ValueEnhancementRoadmap  `json:"value_enhancement_roadmap"`
	Recommendations StrategicRecommendations `json:"strategic_recommendations"`
}

// AnalysisMetadata describes how the analysis was produced.
type AnalysisMetadata struct {
	ConfidenceScore   float64  `json:"confidence_score"`
	AnalysisDepth     string   `json:"analysis_depth"`
	DataSourcesUsed   []string `json:"data_sources_used"`
	AnalysisTimestamp string   `json:"analysis_timestamp,omitempty"`
}

// MarketAssessment scores the overall market opportunity.
type MarketAssessment struct {
	OverallScore     float64 `json:"overall_score"`
	Verdict          string  `json:"verdict"`
	MarketSaturation string  `json:"market_saturation"`
	EntryBarriers    string  `json:"entry_barriers"`
	MarketTiming     string  `json:"market_timing"`
}

// CompetitorProfile describes one existing solution in the market.
type CompetitorProfile struct {
	Name                string   `json:"name"`
	Strengths           []string `json:"strengths"`
	Weaknesses          []string `json:"weaknesses"`
	MarketPosition      string   `json:"market_position"`
	CustomerPainPoints  []string `json:"customer_pain_points"`
	DifferentiationGaps []string `json:"differentiation_gaps"`
}

// CompetitiveLandscape maps the existing solutions and the gaps they leave.
type CompetitiveLandscape struct {
	ExistingSolutions     []CompetitorProfile `json:"existing_solutions"`
	MarketGaps            []string            `json:"market_gaps"`
	CompetitiveAdvantages []string            `json:"competitive_advantages"`
	MarketSaturationLevel string              `json:"market_saturation_level"`
}

// UniquenessAnalysis assesses how novel the idea is.
type UniquenessAnalysis struct {
	NoveltyScore           float64  `json:"novelty_score"`
	DifferentiationFactors []string `json:"differentiation_factors"`
	CopycatRisk            string   `json:"copycat_risk"`
	InnovationLevel        string   `json:"innovation_level"`
	UniqueValueProposition string   `json:"unique_value_proposition"`
}

// BusinessViability assesses whether the idea can sustain a business.
type BusinessViability struct {
	CustomerValueProposition string `json:"customer_value_proposition"`
	TargetMarketSize         string `json:"target_market_size"`
	MonetizationPotential    string `json:"monetization_potential"`
	PricingStrategy          string `json:"pricing_strategy"`
	CustomerAcquisitionCost  string `json:"customer_acquisition_cost"`
	UnitEconomics            string `json:"unit_economics"`
}

// RiskAssessment lists risks by category with mitigations.
type RiskAssessment struct {
	MarketRisks          []string `json:"market_risks"`
	ExecutionRisks       []string `json:"execution_risks"`
	CompetitiveRisks     []string `json:"competitive_risks"`
	MitigationStrategies []string `json:"mitigation_strategies"`
	RiskLevel            string   `json:"risk_level"`
}

// ValueEnhancementRoadmap suggests how to strengthen the idea over time.
type ValueEnhancementRoadmap struct {
	CurrentGaps                  []string `json:"current_gaps"`
	DifferentiationOpportunities []string `json:"differentiation_opportunities"`
	FeaturePrioritization        []string `json:"feature_prioritization"`
	MarketPositioning            []string `json:"market_positioning"`
	CompetitiveResponseStrategy  []string `json:"competitive_response_strategy"`
}

// StrategicRecommendations holds the actionable guidance.
type StrategicRecommendations struct {
	MarketEntryStrategy     string   `json:"market_entry_strategy"`
	PivotSuggestions        []string `json:"pivot_suggestions"`
	SuccessFactors          []string `json:"success_factors"`
	NextSteps               []string `json:"next_steps"`
	TimelineRecommendations string   `json:"timeline_recommendations"`
}

// NewErrorAnalysis builds the deterministic placeholder analysis used when
// the LLM stage or validation fails. Every field carries an explicit
// failure marker so the envelope stays schema-valid with no nulls; the
// underlying error text belongs in the envelope, not here.
func NewErrorAnalysis() *ComprehensiveAnalysis {
	return &ComprehensiveAnalysis{
		Metadata: AnalysisMetadata{
			ConfidenceScore:   0.0,
			AnalysisDepth:     "error",
			DataSourcesUsed:   []string{"error"},
			AnalysisTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Market: MarketAssessment{
			OverallScore:     0,
			Verdict:          FailureVerdict,
			MarketSaturation: "Unknown",
			EntryBarriers:    "Unknown",
			MarketTiming:     "Unknown",
		},
		Competitive: CompetitiveLandscape{
			ExistingSolutions:     []CompetitorProfile{},
			MarketGaps:            []string{"Analysis failed - unable to identify gaps"},
			CompetitiveAdvantages: []string{"Analysis failed - unable to identify advantages"},
			MarketSaturationLevel: "Analysis failed - unable to assess market saturation",
		},
		Uniqueness: UniquenessAnalysis{
			NoveltyScore:           0.0,
			DifferentiationFactors: []string{"Analysis failed"},
			CopycatRisk:            "Unknown",
			InnovationLevel:        "Unknown",
			UniqueValueProposition: "Analysis failed - unable to assess uniqueness",
		},
		Viability: BusinessViability{
			CustomerValueProposition: "Analysis failed",
			TargetMarketSize:         "Unknown",
			MonetizationPotential:    "Unknown",
			PricingStrategy:          "Analysis failed",
			CustomerAcquisitionCost:  "Unknown",
			UnitEconomics:            "Analysis failed",
		},
		Risk: RiskAssessment{
			MarketRisks:          []string{"Analysis failed - unable to assess risks"},
			ExecutionRisks:       []string{"Analysis failed - unable to assess execution risks"},
			CompetitiveRisks:     []string{"Analysis failed - unable to assess competitive risks"},
			MitigationStrategies: []string{"Retry the analysis or contact support"},
			RiskLevel:            "Unknown",
		},
		Roadmap: ValueEnhancementRoadmap{
			CurrentGaps:                  []string{"Analysis failed"},
			DifferentiationOpportunities: []string{"Analysis failed"},
			FeaturePrioritization:        []string{"Analysis failed"},
			MarketPositioning:            []string{"Analysis failed"},
			CompetitiveResponseStrategy:  []string{"Analysis failed"},
		},
		Recommendations: StrategicRecommendations{
			MarketEntryStrategy:     "Analysis failed - unable to provide recommendations",
			PivotSuggestions:        []string{"Retry the analysis"},
			SuccessFactors:          []string{"Analysis failed"},
			NextSteps:               []string{"Retry the analysis or contact support"},
			TimelineRecommendations: "Analysis failed",
		},
	}
}
