// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// NotFound is the content of a section whose label could not be located
const NotFound = "Not Found"

// ATSScoreSection is the section whose content is re-parsed into the numeric score
const ATSScoreSection = "ATS Score"

// DefaultSections is the ordered section list requested by the analysis prompt
var DefaultSections = []string{
	ATSScoreSection,
	"Experience",
	"Strengths",
	"Weaknesses",
	"Projects",
	"General Information",
	"Academic Details",
}

// Section is one labeled part of an LLM analysis response
type Section struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// AnalysisRecord holds the sections extracted from one analysis response.
// Sections always contains every declared name, in declaration order.
type AnalysisRecord struct {
	SourceID string    `json:"source_id"`
	Score    int       `json:"score"`
	Sections []Section `json:"sections"`
}

// Get returns the content of the named section
func (r AnalysisRecord) Get(name string) (string, bool) {
	for _, s := range r.Sections {
		if s.Name == name {
			return s.Content, true
		}
	}
	return "", false
}

// Content returns the named section's content, or NotFound when the record does not declare it
func (r AnalysisRecord) Content(name string) string {
	if content, ok := r.Get(name); ok {
		return content
	}
	return NotFound
}

// Names returns the section names in declaration order
func (r AnalysisRecord) Names() []string {
	names := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		names[i] = s.Name
	}
	return names
}

// Found reports whether any section carries extracted content
func (r AnalysisRecord) Found() bool {
	for _, s := range r.Sections {
		if s.Content != NotFound {
			return true
		}
	}
	return false
}

// ATSReport is the result of the job-role ATS analysis
type ATSReport struct {
	SourceID        string  `json:"source_id"`
	JobRole         string  `json:"job_role,omitempty"`
	PercentageMatch float64 `json:"percentage_match"`
	KeywordsMissing string  `json:"keywords_missing"`
	FinalThoughts   string  `json:"final_thoughts"`
	Raw             string  `json:"raw"`
}
