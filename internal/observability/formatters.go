// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// writeList writes up to limit items as bullets with a "more" line.
func writeList(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintRecord outputs the sections of one analysis record.
func (p *Printer) PrintRecord(record *types.AnalysisRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:  %s\n", record.SourceID)
	fmt.Fprintf(&sb, "Score:   %d\n", record.Score)
	for _, section := range record.Sections {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "%s:\n", section.Name)
		fmt.Fprintf(&sb, "  %s\n", section.Content)
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSReport outputs the match percentage, missing keywords and final thoughts.
func (p *Printer) PrintATSReport(report *types.ATSReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source:   %s\n", report.SourceID)
	if report.JobRole != "" {
		fmt.Fprintf(&sb, "Role:     %s\n", report.JobRole)
	}
	fmt.Fprintf(&sb, "Match:    %.0f%%\n", report.PercentageMatch)
	sb.WriteString("\nKeywords Missing:\n")
	fmt.Fprintf(&sb, "  %s\n", report.KeywordsMissing)
	sb.WriteString("\nFinal Thoughts:\n")
	fmt.Fprintf(&sb, "  %s", report.FinalThoughts)

	p.printBox("ATS REPORT", sb.String())
}

// PrintBatchReport outputs the ranked batch with the shortlist marked.
func (p *Printer) PrintBatchReport(report *types.BatchReport) {
	if report == nil {
		return
	}

	shortlisted := make(map[string]bool, len(report.Shortlist))
	for _, item := range report.Shortlist {
		shortlisted[item.SourceID] = true
	}

	var sb strings.Builder
	s := report.Summary
	fmt.Fprintf(&sb, "Resumes:   %d (%d ok, %d failed)\n", s.Total, s.Succeeded, s.Failed)
	fmt.Fprintf(&sb, "Mean:      %.1f\n", s.MeanScore)
	if s.TopSource != "" {
		fmt.Fprintf(&sb, "Top:       %s (%d)\n", s.TopSource, s.TopScore)
	}
	fmt.Fprintf(&sb, "Shortlist: %d at score >= %d\n", len(report.Shortlist), report.MinScore)
	if report.RunID != "" {
		fmt.Fprintf(&sb, "Run:       %s\n", report.RunID)
	}
	sb.WriteString("\n")

	for i, item := range report.Items {
		switch {
		case item.Failed():
			fmt.Fprintf(&sb, "%2d. ✗ %s: %s\n", i+1, item.SourceID, item.Error)
		case shortlisted[item.SourceID]:
			fmt.Fprintf(&sb, "%2d. ★ %3d  %s\n", i+1, item.Record.Score, item.SourceID)
		default:
			fmt.Fprintf(&sb, "%2d.   %3d  %s\n", i+1, item.Record.Score, item.SourceID)
		}
	}

	p.printBox("BATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs the catalog skills and industries found in a document.
func (p *Printer) PrintSkills(skills, industries []string, experienceYears float64) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Experience: %.1f years\n", experienceYears)
	sb.WriteString("\nSkills:\n")
	if len(skills) == 0 {
		sb.WriteString("  none found\n")
	}
	writeList(&sb, skills, 10)
	if len(industries) > 0 {
		sb.WriteString("\nIndustries:\n")
		writeList(&sb, industries, maxItemsToShow)
	}

	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedRoles outputs the best matching roles.
func (p *Printer) PrintRankedRoles(roles []types.RankedRole) {
	if len(roles) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(roles), maxItemsToShow)
	for i := 0; i < count; i++ {
		role := roles[i]
		fmt.Fprintf(&sb, "#%d  %s (%d/%d)\n", i+1, role.Name, role.MatchCount, role.RequiredCount)
		if len(role.MatchedSkills) > 0 {
			fmt.Fprintf(&sb, "    Skills: %s\n", truncate(strings.Join(role.MatchedSkills, ", "), 40))
		}
	}
	if len(roles) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more roles", len(roles)-maxItemsToShow)
	}

	p.printBox("RANKED ROLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGuidance outputs career suggestions.
func (p *Printer) PrintGuidance(g *types.Guidance) {
	if g == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Experience: %.1f years\n", g.ExperienceYears)
	if g.PrimaryRole == "" {
		sb.WriteString("No catalog skills found.\n")
	} else {
		fmt.Fprintf(&sb, "Primary:    %s\n", g.PrimaryRole)
	}

	if len(g.TechSkills) > 0 {
		sb.WriteString("\nTechnical Skills:\n")
		writeList(&sb, g.TechSkills, maxItemsToShow)
	}
	if len(g.SoftSkills) > 0 {
		sb.WriteString("\nSoft Skills:\n")
		writeList(&sb, g.SoftSkills, 3)
	}
	if len(g.TopRoles) > 0 {
		sb.WriteString("\nTop Roles:\n")
		writeList(&sb, g.TopRoles, maxItemsToShow)
	}
	if len(g.Courses) > 0 {
		sb.WriteString("\nCourses:\n")
		writeList(&sb, g.Courses, maxItemsToShow)
	}
	if len(g.Salaries) > 0 {
		sb.WriteString("\nSalaries:\n")
		roles := make([]string, 0, len(g.Salaries))
		for role := range g.Salaries {
			roles = append(roles, role)
		}
		sort.Strings(roles)
		for _, role := range roles {
			fmt.Fprintf(&sb, "  • %s: %s\n", role, g.Salaries[role])
		}
	}

	p.printBox("CAREER GUIDANCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLinkedIn outputs the profile breakdown and any suggestions.
func (p *Printer) PrintLinkedIn(result *types.LinkedInAnalysis) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Skill Match: %.1f%%\n", result.SkillMatchScore)
	fmt.Fprintf(&sb, "Experience:  %.1f years\n", result.ExperienceYears)
	fmt.Fprintf(&sb, "Projects:    %d\n", result.ProjectCount)

	if len(result.SkillsFound) > 0 {
		sb.WriteString("\nSkills Found:\n")
		writeList(&sb, result.SkillsFound, maxItemsToShow)
	}
	if len(result.Degrees) > 0 {
		sb.WriteString("\nDegrees:\n")
		writeList(&sb, result.Degrees, 3)
	}
	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		writeList(&sb, result.Suggestions, maxItemsToShow)
	}

	p.printBox("LINKEDIN PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}
