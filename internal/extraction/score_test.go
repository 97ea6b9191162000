package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "integer", input: "72%", expected: 72},
		{name: "decimal truncates", input: "Percentage Match: 85.5%", expected: 85},
		{name: "decimal just below next", input: "99.99%", expected: 99},
		{name: "space before percent", input: "score is 64 %", expected: 64},
		{name: "first match wins", input: "40% then 90%", expected: 40},
		{name: "boundary 100", input: "100%", expected: 100},
		{name: "zero", input: "0%", expected: 0},
		{name: "no numbers", input: "no numbers here", expected: 0},
		{name: "number without percent", input: "score 88", expected: 0},
		{name: "not found sentinel", input: "Not Found", expected: 0},
		{name: "out of range", input: "150%", expected: 0},
		{name: "huge number", input: "9999999999999999999999999999999%", expected: 0},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseScore(tt.input))
		})
	}
}

func TestParsePercentageMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "decimal", input: "Percentage Match: 85.5%", expected: 85.5},
		{name: "embedded in response", input: "Summary\nPercentage Match: 70%\nKeywords Missing: Go", expected: 70},
		{name: "lowercase and bold", input: "percentage match: **64%**", expected: 64},
		{name: "no space", input: "Percentage Match:91%", expected: 91},
		{name: "missing label", input: "ATS Score: 85%", expected: 0},
		{name: "missing percent", input: "Percentage Match: 85", expected: 0},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePercentageMatch(tt.input), 1e-9)
		})
	}
}
