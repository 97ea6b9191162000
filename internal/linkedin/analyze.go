// Package linkedin scores LinkedIn profile text against target skills and
// asks the LLM for profile improvements.
package linkedin

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var (
	projectPattern = regexp.MustCompile(`(?i)projects?\b`)
	degreePattern  = regexp.MustCompile(`(?i)(?:Bachelor|Master|PhD|MBA|M\.Tech|B\.Tech) of [A-Za-z ]+`)
)

// Analyze computes the heuristic profile breakdown for text.
func Analyze(text string, targetSkills []string) types.LinkedInAnalysis {
	targets := dedupe(targetSkills)

	found := make([]string, 0, len(targets))
	for _, skill := range targets {
		if skills.Contains(text, skill) {
			found = append(found, skill)
		}
	}

	var score float64
	if len(targets) > 0 {
		score = float64(len(found)) / float64(len(targets)) * 100
	}

	return types.LinkedInAnalysis{
		SkillMatchScore: score,
		SkillsFound:     found,
		ExperienceYears: skills.SumExperienceYears(text),
		ProjectCount:    len(projectPattern.FindAllStringIndex(text, -1)),
		Degrees:         Degrees(text),
	}
}

// Degrees returns the degree phrases in text in order of appearance.
func Degrees(text string) []string {
	matches := degreePattern.FindAllString(text, -1)
	degrees := make([]string, 0, len(matches))
	for _, m := range matches {
		degrees = append(degrees, strings.TrimSpace(m))
	}
	return degrees
}

// dedupe trims target skills and drops blanks and case-insensitive repeats.
func dedupe(targets []string) []string {
	seen := make(map[string]struct{}, len(targets))
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
