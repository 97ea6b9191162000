package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_Match(t *testing.T) {
	vocabulary := []string{"Python", "Java", "C++", "Machine Learning", "Node.js", "R", "C#", "SQL"}
	m := NewMatcher(vocabulary)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "case insensitive and deduplicated", text: "I know Python and python.", expected: []string{"Python"}},
		{name: "no substring hits", text: "JavaScript", expected: []string{}},
		{name: "symbol terms", text: "Wrote C++ and C# services", expected: []string{"C++", "C#"}},
		{name: "dotted term", text: "APIs in node.js", expected: []string{"Node.js"}},
		{name: "phrase across whitespace", text: "applied machine\n learning daily", expected: []string{"Machine Learning"}},
		{name: "phrase words apart do not match", text: "machine vision and deep learning", expected: []string{}},
		{name: "single letter term", text: "Statistics in R, SQL reporting", expected: []string{"R", "SQL"}},
		{name: "single letter inside word", text: "Rust and Ruby", expected: []string{}},
		{name: "vocabulary order not text order", text: "SQL, Java, Python", expected: []string{"Python", "Java", "SQL"}},
		{name: "empty text", text: "", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.Match(tt.text))
		})
	}
}

func TestMatcher_SpecExamples(t *testing.T) {
	assert.Equal(t, map[string]struct{}{"Python": {}}, NewMatcher([]string{"Python", "Java"}).MatchSet("I know Python and python."))
	assert.Empty(t, NewMatcher([]string{"Java"}).MatchSet("JavaScript"))
}

func TestMatcher_EmptyVocabulary(t *testing.T) {
	assert.Empty(t, NewMatcher(nil).Match("Python Java"))
	assert.Empty(t, NewMatcher([]string{"", "  "}).Match("Python Java"))

	var nilMatcher *Matcher
	assert.Empty(t, nilMatcher.Match("Python"))
}

func TestMatcher_DropsDuplicateTerms(t *testing.T) {
	m := NewMatcher([]string{"Go", "go", " Go "})
	assert.Equal(t, []string{"Go"}, m.Terms())
}

func TestMatcher_Deterministic(t *testing.T) {
	m := NewMatcher([]string{"Docker", "Kubernetes", "AWS", "Git"})
	text := "git, aws, kubernetes and docker"
	first := m.Match(text)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, m.Match(text))
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("Strong Power BI dashboards", "Power BI"))
	assert.False(t, Contains("Powerful BI", "Power BI"))
	assert.False(t, Contains("anything", " "))
}
