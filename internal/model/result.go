package model

import "time"

// ValidationResult is the envelope returned for every validation run.
// Analysis is never nil: on any failure it holds the deterministic
// error-analysis placeholder and Error carries the diagnostic text.
type ValidationResult struct {
	JobID         string                 `json:"job_id"`
	Idea          string                 `json:"idea"`
	Analysis      *ComprehensiveAnalysis `json:"analysis"`
	RawData       SourceData             `json:"raw_data"`
	ServiceStatus map[string]bool        `json:"api_status"`
	ExecutionTime float64                `json:"execution_time"`
	Timestamp     time.Time              `json:"timestamp"`
	Error         string                 `json:"error,omitempty"`
}

// QuickAssessment is the reduced analysis produced by the quick flow.
type QuickAssessment struct {
	MarketPotential      string   `json:"market_potential"`
	CompetitiveLandscape string   `json:"competitive_landscape"`
	KeyRisks             []string `json:"key_risks,omitempty"`
	ImmediateConcerns    string   `json:"immediate_concerns,omitempty"`
	NextStep             string   `json:"next_step"`
}

// NewErrorQuickAssessment builds the placeholder assessment used when
// the quick flow fails, mirroring NewErrorAnalysis.
func NewErrorQuickAssessment() *QuickAssessment {
	return &QuickAssessment{
		MarketPotential:      "Analysis failed - unable to assess market potential",
		CompetitiveLandscape: "Analysis failed - unable to assess competition",
		KeyRisks:             []string{"Analysis failed"},
		ImmediateConcerns:    "Analysis failed",
		NextStep:             "Retry the analysis or contact support",
	}
}

// QuickResult is the envelope for the quick validation flow.
type QuickResult struct {
	Idea          string           `json:"idea"`
	Assessment    *QuickAssessment `json:"quick_assessment"`
	RawData       SourceData       `json:"raw_data"`
	ServiceStatus map[string]bool  `json:"api_status"`
	ExecutionTime float64          `json:"execution_time"`
	Timestamp     time.Time        `json:"timestamp"`
	Error         string           `json:"error,omitempty"`
}
