package linkedin

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/llm/llmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest(t *testing.T) {
	fake := llmtest.NewFake("Here are my suggestions:\n\n- Add SQL to your headline\n  - Quantify the churn model impact  \n")

	got, err := Suggest(context.Background(), fake, "profile text", []string{"SQL", "Python"}, "Data analyst role")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Here are my suggestions:",
		"- Add SQL to your headline",
		"- Quantify the churn model impact",
	}, got)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.TierLite, calls[0].Tier)
	assert.Equal(t, SuggestionTemperature, calls[0].Temperature)
	assert.Contains(t, calls[0].Prompt, "profile text")
	assert.Contains(t, calls[0].Prompt, "SQL, Python")
	assert.Contains(t, calls[0].Prompt, "Data analyst role")
}

func TestSuggest_LLMError(t *testing.T) {
	fake := &llmtest.Fake{Respond: func(string) (string, error) {
		return "", errors.New("quota exceeded")
	}}

	got, err := Suggest(context.Background(), fake, "profile", nil, "")
	assert.Error(t, err)
	assert.Nil(t, got)
}
