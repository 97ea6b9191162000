// Package extraction carves free-text LLM analysis responses into labeled sections and scores.
package extraction

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxCachedLabels bounds the compiled label patterns kept across calls.
// Names beyond it are compiled per call.
const maxCachedLabels = 128

var labelCache = struct {
	sync.RWMutex
	patterns map[string]*regexp.Regexp
}{patterns: make(map[string]*regexp.Regexp)}

// labelPattern matches a section label such as "ATS Score:", "**Strengths:**" or "3. Projects:".
// Group 1 spans the whole label including list markers and emphasis; the match ends after the colon.
func labelPattern(name string) *regexp.Regexp {
	labelCache.RLock()
	re, ok := labelCache.patterns[name]
	labelCache.RUnlock()
	if ok {
		return re
	}

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	phrase := strings.Join(words, `\s+`)
	re = regexp.MustCompile(`(?im)(?:^|[^\p{L}\p{N}_])((?:\d+\.[ \t]*)?(?:[*_#]+[ \t]*)?` + phrase + `(?:[ \t]*[*_]+)?[ \t]*:(?:[ \t]*[*_]+(?:[ \t]|$))?)`)

	labelCache.Lock()
	defer labelCache.Unlock()
	if cached, ok := labelCache.patterns[name]; ok {
		return cached
	}
	if len(labelCache.patterns) < maxCachedLabels {
		labelCache.patterns[name] = re
	}
	return re
}

// span is the byte range of one label occurrence.
type span struct {
	start, end int
}

// findLabels returns every occurrence of the label in response, in order.
func findLabels(response string, label *regexp.Regexp) []span {
	locs := label.FindAllStringSubmatchIndex(response, -1)
	spans := make([]span, len(locs))
	for i, loc := range locs {
		spans[i] = span{start: loc[2], end: loc[3]}
	}
	return spans
}

// Extract parses response into a record holding exactly the given sections, in order.
//
// Each section is found by scanning for its label, then capturing until the earliest
// label of a later section (or end of input). Earlier sections never bound a capture.
// Missing or empty sections hold types.NotFound. The ATS Score section, when declared,
// is parsed into the record's numeric Score.
func Extract(response string, sections []string) types.AnalysisRecord {
	names := normalizeSections(sections)
	occurrences := make([][]span, len(names))
	for i, name := range names {
		occurrences[i] = findLabels(response, labelPattern(name))
	}

	record := types.AnalysisRecord{Sections: make([]types.Section, len(names))}
	for i, name := range names {
		record.Sections[i] = types.Section{
			Name:    name,
			Content: sectionContent(response, occurrences[i], occurrences[i+1:]),
		}
	}

	if raw, ok := record.Get(types.ATSScoreSection); ok {
		record.Score = ParseScore(raw)
	}
	return record
}

// ExtractDefault extracts the default analysis sections from response
func ExtractDefault(response string) types.AnalysisRecord {
	return Extract(response, types.DefaultSections)
}

// sectionContent captures from the first occurrence of a label up to the earliest
// later-section label that follows it.
func sectionContent(response string, own []span, later [][]span) string {
	if len(own) == 0 {
		return types.NotFound
	}
	start := own[0].end
	end := nextLabel(start, later, len(response))

	content := strings.TrimSpace(response[start:end])
	if content == "" {
		return types.NotFound
	}
	return content
}

// nextLabel returns the offset of the earliest later-section label at or after start,
// or limit when none follows.
func nextLabel(start int, later [][]span, limit int) int {
	end := limit
	for _, spans := range later {
		i := sort.Search(len(spans), func(i int) bool { return spans[i].start >= start })
		if i < len(spans) && spans[i].start < end {
			end = spans[i].start
		}
	}
	return end
}

// NotFoundRecord builds the record used when no response could be obtained
func NotFoundRecord(sourceID string, sections []string) types.AnalysisRecord {
	names := normalizeSections(sections)
	record := types.AnalysisRecord{
		SourceID: sourceID,
		Sections: make([]types.Section, len(names)),
	}
	for i, name := range names {
		record.Sections[i] = types.Section{Name: name, Content: types.NotFound}
	}
	return record
}

// normalizeSections trims names and drops blanks and repeats, keeping first positions
func normalizeSections(sections []string) []string {
	seen := make(map[string]bool, len(sections))
	out := make([]string, 0, len(sections))
	for _, s := range sections {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
