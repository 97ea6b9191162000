package extraction

import (
	"math"
	"regexp"
	"strconv"
)

var (
	percentPattern         = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%`)
	percentageMatchPattern = regexp.MustCompile(`(?i)Percentage\s+Match\s*:\s*\**\s*(\d+(?:\.\d+)?)\s*%`)
)

// ParseScore returns the first percentage in text truncated to an integer.
// It returns 0 when no percentage can be recovered or the value lies outside [0, 100].
func ParseScore(text string) int {
	m := percentPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v > 100 {
		return 0
	}
	return int(math.Trunc(v))
}

// ParsePercentageMatch returns the number following "Percentage Match:" in a raw response, or 0
func ParsePercentageMatch(text string) float64 {
	m := percentageMatchPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return v
}
