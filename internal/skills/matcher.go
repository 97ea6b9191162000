// Package skills matches fixed vocabularies against free text and aggregates experience mentions.
package skills

import (
	"regexp"
	"strings"
)

// Matcher finds whole-word, case-insensitive occurrences of vocabulary terms.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	terms    []string
	patterns []*regexp.Regexp
}

// NewMatcher compiles one pattern per vocabulary term.
// Terms are trimmed; blank and repeated terms are dropped.
func NewMatcher(vocabulary []string) *Matcher {
	m := &Matcher{}
	seen := make(map[string]bool, len(vocabulary))
	for _, term := range vocabulary {
		term = strings.TrimSpace(term)
		key := strings.ToLower(term)
		if term == "" || seen[key] {
			continue
		}
		seen[key] = true
		m.terms = append(m.terms, term)
		m.patterns = append(m.patterns, termPattern(term))
	}
	return m
}

// termPattern builds a phrase pattern bounded by non-word characters on both sides.
// Boundaries are explicit so terms ending in symbols such as "C++" or "C#" still match.
func termPattern(term string) *regexp.Regexp {
	words := strings.Fields(term)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + strings.Join(words, `\s+`) + `(?:$|[^\p{L}\p{N}_])`)
}

// Terms returns the vocabulary in match order
func (m *Matcher) Terms() []string {
	return append([]string(nil), m.terms...)
}

// Match returns the vocabulary terms found in text, in vocabulary order
func (m *Matcher) Match(text string) []string {
	found := make([]string, 0)
	if m == nil {
		return found
	}
	for i, re := range m.patterns {
		if re.MatchString(text) {
			found = append(found, m.terms[i])
		}
	}
	return found
}

// MatchSet returns the terms found in text as a set
func (m *Matcher) MatchSet(text string) map[string]struct{} {
	found := m.Match(text)
	set := make(map[string]struct{}, len(found))
	for _, term := range found {
		set[term] = struct{}{}
	}
	return set
}

// Contains reports whether term occurs in text as a whole word or phrase
func Contains(text, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return false
	}
	return termPattern(term).MatchString(text)
}
