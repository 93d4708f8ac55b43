package analysis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/venture-check/internal/model"
)

// requiredSections are the eight top-level objects every comprehensive
// analysis must contain.
var requiredSections = []string{
	"analysis_metadata",
	"market_assessment",
	"competitive_landscape",
	"uniqueness_analysis",
	"business_viability",
	"risk_assessment",
	"value_enhancement_roadmap",
	"strategic_recommendations",
}

// criticalFields must be present inside their section for the analysis
// to be usable at all.
var criticalFields = map[string][]string{
	"analysis_metadata":         {"confidence_score", "analysis_depth", "data_sources_used"},
	"market_assessment":         {"overall_score", "verdict", "market_saturation"},
	"uniqueness_analysis":       {"novelty_score", "copycat_risk", "unique_value_proposition"},
	"business_viability":        {"customer_value_proposition", "target_market_size"},
	"risk_assessment":           {"risk_level", "mitigation_strategies"},
	"strategic_recommendations": {"next_steps", "market_entry_strategy"},
}

// scoreRange declares the numeric bounds for one score field.
type scoreRange struct {
	section string
	field   string
	min     float64
	max     float64
}

var scoreRanges = []scoreRange{
	{"market_assessment", "overall_score", 0, 100},
	{"uniqueness_analysis", "novelty_score", 0, 10},
	{"analysis_metadata", "confidence_score", 0, 1},
}

// minLenExempt lists field paths (list indexes stripped) whose values
// are names, enums, or identifiers rather than prose, plus the score
// fields that checkScores owns. The minimum-length check skips them.
var minLenExempt = map[string]bool{
	"analysis_metadata.confidence_score":                       true,
	"analysis_metadata.analysis_depth":                         true,
	"analysis_metadata.analysis_timestamp":                     true,
	"analysis_metadata.data_sources_used":                      true,
	"market_assessment.overall_score":                          true,
	"uniqueness_analysis.novelty_score":                        true,
	"competitive_landscape.existing_solutions.name":            true,
	"competitive_landscape.existing_solutions.market_position": true,
}

// QualityIssue is one advisory finding. Issues never invalidate an
// analysis; they exist for observability.
type QualityIssue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (q QualityIssue) String() string { return q.Path + ": " + q.Message }

// Validator checks model output structurally and for content quality.
// Structural defects are terminal; quality findings are advisory.
type Validator struct {
	rules QualityRules
}

// NewValidator creates a validator with the given quality ruleset.
func NewValidator(rules QualityRules) *Validator {
	return &Validator{rules: rules}
}

// ValidateComprehensive extracts, parses, and checks a comprehensive
// analysis. On success the repaired document (string scores coerced to
// numbers) is decoded into the typed struct. A non-nil error means the
// output is unusable and the caller must substitute the failure
// placeholder.
func (v *Validator) ValidateComprehensive(rawText string) (*model.ComprehensiveAnalysis, []QualityIssue, error) {
	candidate, err := ExtractJSON(rawText)
	if err != nil {
		return nil, nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, nil, eris.Wrap(err, "analysis: parse response JSON")
	}

	if err := checkStructure(doc); err != nil {
		return nil, nil, err
	}

	issues := v.checkQuality(doc)
	if len(issues) > 0 {
		zap.L().Warn("analysis quality issues",
			zap.Int("count", len(issues)),
			zap.Stringers("issues", issues),
		)
	}

	analysis, err := decodeComprehensive(doc)
	if err != nil {
		return nil, issues, err
	}

	return analysis, issues, nil
}

// ValidateQuick extracts and checks a quick assessment.
func (v *Validator) ValidateQuick(rawText string) (*model.QuickAssessment, error) {
	candidate, err := ExtractJSON(rawText)
	if err != nil {
		return nil, err
	}

	var doc struct {
		QuickAssessment *model.QuickAssessment `json:"quick_assessment"`
	}
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
		return nil, eris.Wrap(err, "analysis: parse quick assessment JSON")
	}
	if doc.QuickAssessment == nil {
		return nil, eris.New("analysis: missing quick_assessment section")
	}

	qa := doc.QuickAssessment
	if qa.MarketPotential == "" {
		return nil, eris.New("analysis: missing critical field: quick_assessment.market_potential")
	}
	if qa.CompetitiveLandscape == "" {
		return nil, eris.New("analysis: missing critical field: quick_assessment.competitive_landscape")
	}
	if qa.NextStep == "" {
		return nil, eris.New("analysis: missing critical field: quick_assessment.next_step")
	}

	return qa, nil
}

func checkStructure(doc map[string]any) error {
	for _, section := range requiredSections {
		raw, ok := doc[section]
		if !ok {
			return eris.Errorf("analysis: missing required section: %s", section)
		}
		if _, ok := raw.(map[string]any); !ok {
			return eris.Errorf("analysis: section %s must be an object", section)
		}
	}

	for _, section := range requiredSections {
		fields, ok := criticalFields[section]
		if !ok {
			continue
		}
		obj := doc[section].(map[string]any)
		for _, field := range fields {
			if _, ok := obj[field]; !ok {
				return eris.Errorf("analysis: missing critical field: %s.%s", section, field)
			}
		}
	}

	return nil
}

// checkQuality coerces stringly-typed scores back to numbers in place
// first (so a parseable "85" reads as a number by the time the content
// scan runs and the typed decode afterwards succeeds), then scans
// string leaves for content defects.
func (v *Validator) checkQuality(doc map[string]any) []QualityIssue {
	issues := v.checkScores(doc)

	for _, section := range requiredSections {
		obj, ok := doc[section].(map[string]any)
		if !ok {
			continue
		}

		fields := make([]string, 0, len(obj))
		for f := range obj {
			fields = append(fields, f)
		}
		sort.Strings(fields)

		for _, field := range fields {
			path := section + "." + field
			issues = append(issues, v.checkLeaf(path, path, obj[field])...)
		}
	}

	return issues
}

// checkLeaf walks one value. path carries list indexes for reporting;
// generic is the same path without indexes, used for exemption lookups.
func (v *Validator) checkLeaf(path, generic string, value any) []QualityIssue {
	var issues []QualityIssue

	switch val := value.(type) {
	case string:
		trimmed := strings.TrimSpace(val)
		for _, p := range v.rules.Placeholders {
			if trimmed == p {
				return append(issues, QualityIssue{path, "generic placeholder value"})
			}
		}
		if !minLenExempt[generic] && len(trimmed) < v.rules.MinStringLen {
			issues = append(issues, QualityIssue{path, "content too short"})
		}
		for _, pattern := range v.rules.TemplateEchoes {
			if strings.Contains(val, pattern) {
				issues = append(issues, QualityIssue{path, fmt.Sprintf("contains generic example value %q", pattern)})
				break
			}
		}
		lower := strings.ToLower(val)
		for _, statement := range v.rules.GenericStatements {
			if strings.Contains(lower, strings.ToLower(statement)) {
				issues = append(issues, QualityIssue{path, "contains generic template text"})
				break
			}
		}
	case []any:
		if len(val) == 0 {
			issues = append(issues, QualityIssue{path, "empty list"})
			return issues
		}
		for i, item := range val {
			issues = append(issues, v.checkLeaf(fmt.Sprintf("%s[%d]", path, i), generic, item)...)
		}
	case map[string]any:
		fields := make([]string, 0, len(val))
		for f := range val {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			issues = append(issues, v.checkLeaf(path+"."+f, generic+"."+f, val[f])...)
		}
	}

	return issues
}

// checkScores validates the declared numeric fields, coercing string
// values to numbers in the document where possible. Out-of-range and
// uncoercible values are advisory findings, not failures.
func (v *Validator) checkScores(doc map[string]any) []QualityIssue {
	var issues []QualityIssue

	for _, sr := range scoreRanges {
		obj, ok := doc[sr.section].(map[string]any)
		if !ok {
			continue
		}
		raw, ok := obj[sr.field]
		if !ok || raw == nil {
			continue
		}
		path := sr.section + "." + sr.field

		var num float64
		switch val := raw.(type) {
		case float64:
			num = val
		case string:
			lower := strings.ToLower(val)
			instructional := false
			for _, phrase := range v.rules.InstructionalScorePhrases {
				if strings.Contains(lower, phrase) {
					issues = append(issues, QualityIssue{path, "contains copied example text instead of actual score"})
					instructional = true
					break
				}
			}
			if instructional {
				continue
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				issues = append(issues, QualityIssue{path, "should be a numeric value, not text"})
				continue
			}
			num = parsed
			obj[sr.field] = parsed
		default:
			issues = append(issues, QualityIssue{path, "should be a numeric value"})
			continue
		}

		if num < sr.min || num > sr.max {
			issues = append(issues, QualityIssue{path, fmt.Sprintf("score out of range (%g-%g)", sr.min, sr.max)})
		}
	}

	return issues
}

// decodeComprehensive converts the repaired document into the typed
// struct. A score field that survived quality checks as a string will
// fail here, which the workflow treats as a validation failure.
func decodeComprehensive(doc map[string]any) (*model.ComprehensiveAnalysis, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: re-marshal document")
	}

	var analysis model.ComprehensiveAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, eris.Wrap(err, "analysis: decode typed analysis")
	}

	return &analysis, nil
}
