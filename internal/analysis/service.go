// Package analysis runs resumes through the LLM and the rule-based analyzers.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
	"go.uber.org/zap"
)

const promptFile = "analysis.json"

// Service analyzes resumes against job descriptions.
type Service struct {
	client     llm.Client
	catalog    *catalog.Catalog
	skills     *skills.Matcher
	industries *skills.Matcher
	logger     *zap.Logger
}

// NewService creates a Service. A nil catalog means catalog.Default and a nil
// logger discards output.
func NewService(client llm.Client, cat *catalog.Catalog, logger *zap.Logger) *Service {
	if cat == nil {
		cat = catalog.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:     client,
		catalog:    cat,
		skills:     skills.NewMatcher(cat.Skills()),
		industries: skills.NewMatcher(cat.Industries()),
		logger:     logger,
	}
}

// Catalog returns the reference data the service was built with.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Sections returns the section labels extracted from analysis responses.
func (s *Service) Sections() []string {
	return s.catalog.Sections()
}

// AnalyzeResume asks the LLM for the sectioned analysis of resumeText and
// extracts it into a record. On any upstream failure the returned record has
// every section set to types.NotFound and the error says why.
func (s *Service) AnalyzeResume(ctx context.Context, sourceID, resumeText, jobDescription string) (types.AnalysisRecord, error) {
	sections := s.Sections()

	text, err := ingestion.RequireText(resumeText)
	if err != nil {
		return extraction.NotFoundRecord(sourceID, sections), err
	}

	prompt, err := prompts.Render(promptFile, "resume-sections", map[string]string{
		"JobDescription": strings.TrimSpace(jobDescription),
		"Resume":         text,
	})
	if err != nil {
		return extraction.NotFoundRecord(sourceID, sections), err
	}

	resp, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return extraction.NotFoundRecord(sourceID, sections), fmt.Errorf("resume analysis failed: %w", err)
	}
	if strings.TrimSpace(resp) == "" {
		return extraction.NotFoundRecord(sourceID, sections), llm.ErrEmptyResponse
	}

	record := extraction.Extract(resp, sections)
	record.SourceID = sourceID
	s.logger.Debug("resume analyzed",
		zap.String("source", sourceID),
		zap.Int("score", record.Score),
		zap.Bool("found", record.Found()))
	return record, nil
}

// ATSReport asks the LLM for an applicant-tracking evaluation of resumeText
// for jobRole and parses the match, missing keywords and final thoughts.
func (s *Service) ATSReport(ctx context.Context, sourceID, resumeText, jobDescription, jobRole string) (types.ATSReport, error) {
	report := types.ATSReport{
		SourceID:        sourceID,
		JobRole:         jobRole,
		KeywordsMissing: extraction.NoKeywordsMissing,
		FinalThoughts:   extraction.NoFinalThoughts,
	}

	text, err := ingestion.RequireText(resumeText)
	if err != nil {
		return report, err
	}

	role := strings.TrimSpace(jobRole)
	if role == "" {
		role = "the role described below"
	}
	prompt, err := prompts.Render(promptFile, "ats-report", map[string]string{
		"JobRole":        role,
		"JobDescription": strings.TrimSpace(jobDescription),
		"Resume":         text,
	})
	if err != nil {
		return report, err
	}

	resp, err := s.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return report, fmt.Errorf("ATS report failed: %w", err)
	}
	if strings.TrimSpace(resp) == "" {
		return report, llm.ErrEmptyResponse
	}

	report.Raw = resp
	report.PercentageMatch = extraction.ParsePercentageMatch(resp)
	if report.PercentageMatch == 0 {
		report.PercentageMatch = float64(extraction.ParseScore(resp))
	}
	report.KeywordsMissing = extraction.KeywordsMissing(resp)
	report.FinalThoughts = extraction.FinalThoughts(resp)
	return report, nil
}

// Skills returns the catalog skills mentioned in text, in catalog order.
func (s *Service) Skills(text string) []string {
	return s.skills.Match(text)
}

// Industries returns the catalog industries mentioned in text, in catalog order.
func (s *Service) Industries(text string) []string {
	return s.industries.Match(text)
}
