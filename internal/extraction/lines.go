package extraction

import (
	"regexp"
	"strings"
)

// Defaults returned when a response carries no matching line
const (
	NoKeywordsMissing = "No Keywords Missing"
	NoFinalThoughts   = "No Final Thoughts"
)

var (
	keywordsMissingLine = regexp.MustCompile(`(?im)keywords\s+missing[ \t]*:(.*)$`)
	finalThoughtsLine   = regexp.MustCompile(`(?im)final\s+thoughts[ \t]*:(.*)$`)
)

// KeywordsMissing returns the text following "Keywords Missing:" on the first line that has it
func KeywordsMissing(response string) string {
	return lineValue(keywordsMissingLine, response, NoKeywordsMissing)
}

// FinalThoughts returns the text following "Final Thoughts:" on the first line that has it
func FinalThoughts(response string) string {
	return lineValue(finalThoughtsLine, response, NoFinalThoughts)
}

func lineValue(re *regexp.Regexp, response, fallback string) string {
	m := re.FindStringSubmatch(response)
	if m == nil {
		return fallback
	}
	return strings.Trim(m[1], " \t\r*_")
}
