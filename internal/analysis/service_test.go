package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/llm/llmtest"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalogYAML = `
sections: ["ATS Score", "Experience", "Strengths"]
skills: ["Python", "SQL", "Machine Learning", "Communication", "Excel", "JavaScript"]
industries: ["Finance", "Healthcare"]
skill_categories:
  technical: ["Python", "SQL", "Machine Learning"]
  soft: ["Communication"]
roles:
  - name: Web Developer
    skills: ["JavaScript"]
  - name: Data Analyst
    skills: ["SQL", "Excel", "Communication"]
  - name: Data Scientist
    skills: ["Python", "Machine Learning", "SQL"]
  - name: Designer
    skills: ["Figma"]
courses:
  Data Scientist: ["C1", "C2", "C3", "C4", "C5", "C6"]
salaries:
  Data Scientist: "$95,000 - $150,000"
  Data Analyst: "$60,000 - $90,000"
trending: ["Rust", "WebAssembly"]
`

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(testCatalogYAML), "test")
	require.NoError(t, err)
	return cat
}

func sectionedResponse(score string) string {
	return "ATS Score: " + score + "\nExperience: 5 years of experience in Python\nStrengths: SQL, modelling"
}

func TestAnalyzeResume(t *testing.T) {
	fake := llmtest.NewFake(sectionedResponse("85.5%"))
	svc := NewService(fake, testCatalog(t), nil)

	record, err := svc.AnalyzeResume(context.Background(), "jane.pdf", "Jane Doe\nPython developer", "Data scientist role")
	require.NoError(t, err)

	assert.Equal(t, "jane.pdf", record.SourceID)
	assert.Equal(t, 85, record.Score)
	assert.Equal(t, []string{"ATS Score", "Experience", "Strengths"}, record.Names())
	experience, _ := record.Get("Experience")
	assert.Equal(t, "5 years of experience in Python", experience)

	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.TierStandard, calls[0].Tier)
	assert.Contains(t, calls[0].Prompt, "Python developer")
	assert.Contains(t, calls[0].Prompt, "Data scientist role")
}

func TestAnalyzeResume_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		fake    *llmtest.Fake
		text    string
		wantErr error
	}{
		{
			name:    "empty resume text",
			fake:    llmtest.NewFake(sectionedResponse("90%")),
			text:    "  \n\t ",
			wantErr: ingestion.ErrEmptyText,
		},
		{
			name:    "empty llm response",
			fake:    llmtest.NewFake("   "),
			text:    "resume",
			wantErr: llm.ErrEmptyResponse,
		},
		{
			name: "llm error",
			fake: &llmtest.Fake{Respond: func(string) (string, error) {
				return "", &llm.APICallError{Model: "fake", Message: "boom"}
			}},
			text: "resume",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.fake, testCatalog(t), nil)

			record, err := svc.AnalyzeResume(context.Background(), "doc", tt.text, "jd")
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Equal(t, extraction.NotFoundRecord("doc", svc.Sections()), record)
			assert.Zero(t, record.Score)
			assert.False(t, record.Found())
		})
	}
}

func TestATSReport(t *testing.T) {
	resp := "Percentage Match: 72.5%\nKeywords Missing: Kubernetes, Terraform\nFinal Thoughts: Solid backend profile.\n- learn Terraform"
	fake := llmtest.NewFake(resp)
	svc := NewService(fake, testCatalog(t), nil)

	report, err := svc.ATSReport(context.Background(), "cv.docx", "resume text", "jd text", "DevOps Engineer")
	require.NoError(t, err)

	assert.Equal(t, "cv.docx", report.SourceID)
	assert.Equal(t, "DevOps Engineer", report.JobRole)
	assert.InDelta(t, 72.5, report.PercentageMatch, 1e-9)
	assert.Equal(t, "Kubernetes, Terraform", report.KeywordsMissing)
	assert.Equal(t, "Solid backend profile.", report.FinalThoughts)
	assert.Equal(t, resp, report.Raw)
	assert.Contains(t, fake.Calls()[0].Prompt, "specializing in DevOps Engineer")
}

func TestATSReport_Fallbacks(t *testing.T) {
	svc := NewService(llmtest.NewFake("Overall the candidate is a 64% fit."), testCatalog(t), nil)

	report, err := svc.ATSReport(context.Background(), "cv", "resume text", "jd", "")
	require.NoError(t, err)
	assert.InDelta(t, 64.0, report.PercentageMatch, 1e-9)
	assert.Equal(t, extraction.NoKeywordsMissing, report.KeywordsMissing)
	assert.Equal(t, extraction.NoFinalThoughts, report.FinalThoughts)
}

func TestATSReport_LLMError(t *testing.T) {
	fake := &llmtest.Fake{Respond: func(string) (string, error) { return "", errors.New("quota") }}
	svc := NewService(fake, testCatalog(t), nil)

	report, err := svc.ATSReport(context.Background(), "cv", "resume text", "jd", "QA")
	require.Error(t, err)
	assert.Zero(t, report.PercentageMatch)
	assert.Equal(t, extraction.NoKeywordsMissing, report.KeywordsMissing)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(llmtest.NewFake(""), nil, nil)
	assert.Equal(t, types.DefaultSections, svc.Sections())
	assert.NotEmpty(t, svc.Catalog().Roles())
}
