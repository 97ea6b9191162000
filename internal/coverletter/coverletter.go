// Package coverletter drafts cover letters from an applicant profile and a job posting.
package coverletter

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
)

// Resume holds the applicant details a cover letter draws on.
type Resume struct {
	Name       string   `json:"name" validate:"required"`
	Contact    string   `json:"contact,omitempty"`
	Skills     []string `json:"skills" validate:"required,min=1,dive,required"`
	Experience []string `json:"experience,omitempty"`
	Education  []string `json:"education,omitempty"`
	Summary    string   `json:"summary,omitempty"`
}

// Job describes the position being applied for.
type Job struct {
	Title           string   `json:"job_title" validate:"required"`
	CompanyName     string   `json:"company_name" validate:"required"`
	Description     string   `json:"job_description" validate:"required"`
	KeyRequirements []string `json:"key_requirements,omitempty"`
}

// Preferences are free-form writing instructions such as tone or length.
type Preferences map[string]string

var validate = validator.New()

// Validate checks the required applicant fields.
func (r *Resume) Validate() error {
	return validate.Struct(r)
}

// Validate checks the required job fields.
func (j *Job) Validate() error {
	return validate.Struct(j)
}

// Generate writes a cover letter for resume applying to job.
func Generate(ctx context.Context, client llm.Client, resume Resume, job Job, prefs Preferences) (string, error) {
	if err := resume.Validate(); err != nil {
		return "", fmt.Errorf("invalid resume: %w", err)
	}
	if err := job.Validate(); err != nil {
		return "", fmt.Errorf("invalid job: %w", err)
	}

	prompt, err := prompts.Render("cover_letter.json", "cover-letter", map[string]string{
		"Name":            resume.Name,
		"Contact":         resume.Contact,
		"Skills":          strings.Join(resume.Skills, ", "),
		"Experience":      strings.Join(resume.Experience, "; "),
		"Education":       strings.Join(resume.Education, "; "),
		"Summary":         resume.Summary,
		"JobTitle":        job.Title,
		"CompanyName":     job.CompanyName,
		"JobDescription":  job.Description,
		"KeyRequirements": strings.Join(job.KeyRequirements, ", "),
		"Preferences":     prefs.String(),
	})
	if err != nil {
		return "", err
	}

	letter, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", fmt.Errorf("failed to generate cover letter: %w", err)
	}
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return "", llm.ErrEmptyResponse
	}
	return letter, nil
}

// ExtractProfile asks the LLM to pull the applicant details out of resume text.
func ExtractProfile(ctx context.Context, client llm.Client, resumeText string) (*Resume, error) {
	prompt := llm.BuildExtractionPrompt(llm.ResumeProfileSchema(), resumeText)
	resp, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("failed to extract resume profile: %w", err)
	}

	var profile Resume
	if err := json.Unmarshal([]byte(resp), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse resume profile: %w", err)
	}
	return &profile, nil
}

// String renders preferences as sorted "key: value" pairs.
func (p Preferences) String() string {
	if len(p) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, p[k]))
	}
	return strings.Join(parts, "; ")
}
