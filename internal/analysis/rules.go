package analysis

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// QualityRules parameterize the advisory content checks. They ship
// with defaults tuned against observed model failure modes and can be
// overridden from a YAML file for prompt-iteration work without a
// rebuild.
type QualityRules struct {
	// MinStringLen flags string leaves shorter than this many characters.
	MinStringLen int `yaml:"min_string_len"`
	// Placeholders are exact values treated as non-answers.
	Placeholders []string `yaml:"placeholders"`
	// TemplateEchoes are substrings proving the model copied the
	// schema's example text.
	TemplateEchoes []string `yaml:"template_echoes"`
	// GenericStatements are instructional phrases from the prompt that
	// should never appear verbatim in output.
	GenericStatements []string `yaml:"generic_statements"`
	// InstructionalScorePhrases mark a score field that still contains
	// the prompt's own description instead of a number.
	InstructionalScorePhrases []string `yaml:"instructional_score_phrases"`
}

// DefaultQualityRules returns the built-in ruleset.
func DefaultQualityRules() QualityRules {
	return QualityRules{
		MinStringLen: 10,
		Placeholders: []string{"N/A", "None", "TBD", "To be determined"},
		TemplateEchoes: []string{
			"Factor 1", "Factor 2", "Strength 1", "Strength 2",
			"Weakness 1", "Weakness 2", "Pain point 1", "Pain point 2",
			"Gap 1", "Gap 2", "Risk 1", "Risk 2", "Strategy 1", "Strategy 2",
			"Opportunity 1", "Opportunity 2", "Approach 1", "Approach 2",
			"Recommendation 1", "Recommendation 2", "Action 1", "Action 2",
			"Insight 1", "Insight 2", "Intelligence 1", "Intelligence 2",
			"Suggestion 1", "Suggestion 2", "Phase 1", "Phase 2",
		},
		GenericStatements: []string{
			"Clear statement of unique value",
			"Brief competitive overview",
			"Specific pricing approach",
			"Detailed analysis of market saturation",
			"Clear problem-solution fit description",
			"Unit economics assessment",
		},
		InstructionalScorePhrases: []string{
			"calculated score from 0-100",
			"calculated score from 0-10",
			"calculated value between 0 and 1",
			"your assessment",
		},
	}
}

// LoadQualityRules reads a ruleset from a YAML file. Fields left empty
// in the file keep their defaults.
func LoadQualityRules(path string) (QualityRules, error) {
	rules := DefaultQualityRules()

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, eris.Wrapf(err, "analysis: read quality rules %s", path)
	}

	// The YAML has a top-level "quality" key
	var wrapper struct {
		Quality QualityRules `yaml:"quality"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return rules, eris.Wrap(err, "analysis: parse quality rules")
	}

	override := wrapper.Quality
	if override.MinStringLen > 0 {
		rules.MinStringLen = override.MinStringLen
	}
	if len(override.Placeholders) > 0 {
		rules.Placeholders = override.Placeholders
	}
	if len(override.TemplateEchoes) > 0 {
		rules.TemplateEchoes = override.TemplateEchoes
	}
	if len(override.GenericStatements) > 0 {
		rules.GenericStatements = override.GenericStatements
	}
	if len(override.InstructionalScorePhrases) > 0 {
		rules.InstructionalScorePhrases = override.InstructionalScorePhrases
	}

	return rules, nil
}
