package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsMissing(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "present", input: "Percentage Match: 70%\nKeywords Missing: Kubernetes, Terraform\nFinal Thoughts: ok", expected: "Kubernetes, Terraform"},
		{name: "bold label", input: "**Keywords Missing:** Go", expected: "Go"},
		{name: "keeps later colons", input: "Keywords Missing: CI: GitHub Actions", expected: "CI: GitHub Actions"},
		{name: "absent", input: "Percentage Match: 70%", expected: NoKeywordsMissing},
		{name: "empty", input: "", expected: NoKeywordsMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeywordsMissing(tt.input))
		})
	}
}

func TestFinalThoughts(t *testing.T) {
	assert.Equal(t, "Solid candidate.", FinalThoughts("Keywords Missing: Go\nFinal Thoughts: Solid candidate.\n"))
	assert.Equal(t, NoFinalThoughts, FinalThoughts("Keywords Missing: Go"))
}
