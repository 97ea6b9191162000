package skills

import (
	"regexp"
	"strconv"
)

var experiencePattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\+?\s*(?:years?|yrs?)\.?\s*(?:of\s*)?experience`)

// SumExperienceYears adds up every "N years of experience" mention in text,
// including open-ended forms such as "5+ yrs of experience".
// Captures that fail to parse are skipped.
func SumExperienceYears(text string) float64 {
	total := 0.0
	for _, m := range experiencePattern.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 0 {
			continue
		}
		total += v
	}
	return total
}
