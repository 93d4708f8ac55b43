package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name string
		idea string
		want string
	}{
		{
			name: "strips stop words",
			idea: "An app that helps people plan weekly meals",
			want: "plan weekly meals",
		},
		{
			name: "caps at five terms",
			idea: "autonomous drone delivery network logistics optimization routing software",
			want: "autonomous drone delivery network logistics",
		},
		{
			name: "strips punctuation",
			idea: "AI-powered resume builder!",
			want: "ai powered resume builder",
		},
		{
			name: "folds diacritics",
			idea: "café recommendation engine",
			want: "cafe recommendation engine",
		},
		{
			name: "lowercases",
			idea: "B2B SaaS Invoicing Tool",
			want: "b2b saas invoicing tool",
		},
		{
			name: "all stop words falls back to raw terms",
			idea: "the app for people",
			want: "the app for people",
		},
		{
			name: "empty input",
			idea: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.idea))
		})
	}
}

func TestBroaderQuery(t *testing.T) {
	assert.Equal(t, "a b c", BroaderQuery("a b c d e", 3))
	assert.Equal(t, "a b", BroaderQuery("a b", 3))
	assert.Equal(t, "", BroaderQuery("", 3))
}
