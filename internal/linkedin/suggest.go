package linkedin

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
)

// SuggestionTemperature keeps suggestions close to the profile text.
const SuggestionTemperature float32 = 0.2

// Suggest asks the LLM for profile improvements and returns one suggestion per
// non-empty response line.
func Suggest(ctx context.Context, client llm.Client, profile string, targetSkills []string, jobDescription string) ([]string, error) {
	prompt, err := prompts.Render("linkedin.json", "profile-suggestions", map[string]string{
		"Profile":        profile,
		"JobDescription": jobDescription,
		"TargetSkills":   strings.Join(targetSkills, ", "),
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GenerateWithTemperature(ctx, prompt, llm.TierLite, SuggestionTemperature)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile suggestions: %w", err)
	}
	return llm.NonEmptyLines(resp), nil
}
