package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQualityRules(t *testing.T) {
	rules := DefaultQualityRules()

	assert.Equal(t, 10, rules.MinStringLen)
	assert.Contains(t, rules.Placeholders, "TBD")
	assert.Contains(t, rules.TemplateEchoes, "Factor 1")
	assert.Contains(t, rules.TemplateEchoes, "Phase 2")
	assert.Contains(t, rules.GenericStatements, "Clear statement of unique value")
	assert.Contains(t, rules.InstructionalScorePhrases, "calculated score from 0-100")
}

func TestLoadQualityRules_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `quality:
  min_string_len: 20
  placeholders:
    - "N/A"
    - "unknown"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadQualityRules(path)
	require.NoError(t, err)

	assert.Equal(t, 20, rules.MinStringLen)
	assert.Equal(t, []string{"N/A", "unknown"}, rules.Placeholders)
	// Untouched fields keep their defaults.
	assert.Contains(t, rules.TemplateEchoes, "Factor 1")
	assert.Contains(t, rules.InstructionalScorePhrases, "your assessment")
}

func TestLoadQualityRules_MissingFile(t *testing.T) {
	rules, err := LoadQualityRules(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	// Defaults come back even on error, so callers can log and proceed.
	assert.Equal(t, DefaultQualityRules().MinStringLen, rules.MinStringLen)
}

func TestLoadQualityRules_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("quality: [not a map"), 0o644))

	_, err := LoadQualityRules(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse quality rules")
}
