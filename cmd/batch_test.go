package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadIdeas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.txt")
	content := `# pipeline candidates
AI meal planning assistant

  subscription box for vintage vinyl records
# parked for now
marketplace for local tool rentals
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ideas, err := readIdeas(path)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "AI meal planning assistant", ideas[0])
	assert.Equal(t, "subscription box for vintage vinyl records", ideas[1])
	assert.Equal(t, "marketplace for local tool rentals", ideas[2])
}

func TestReadIdeas_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n\n"), 0o644))

	_, err := readIdeas(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no ideas found")
}

func TestReadIdeas_MissingFile(t *testing.T) {
	_, err := readIdeas(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}
