package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when a document yields no text after cleaning.
var ErrEmptyText = errors.New("no text extracted")

var (
	innerSpacePattern = regexp.MustCompile(`[ \t\p{Zs}]+`)
	blankRunPattern   = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// NFC so that composed and decomposed accents compare equal
	content = norm.NFC.String(content)

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// RequireText cleans content and fails with ErrEmptyText when nothing is left.
func RequireText(content string) (string, error) {
	cleaned := CleanText(content)
	if cleaned == "" {
		return "", ErrEmptyText
	}
	return cleaned, nil
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	if isBulletLine(trimmed) {
		// bullets keep their indentation and internal spacing
		return strings.Repeat(" ", indent) + trimmed
	}

	content := innerSpacePattern.ReplaceAllString(strings.TrimSpace(line), " ")
	return strings.Repeat(" ", indent) + content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines reduces consecutive blank lines to max 2
func removeExcessiveBlankLines(content string) string {
	return blankRunPattern.ReplaceAllString(content, "\n\n")
}

// IngestFromFile reads a resume or job description from disk, extracts its
// text and returns the cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	doc, err := ExtractText(filepath.Base(path), data)
	if err != nil {
		return "", nil, err
	}
	return doc.Text, doc.Metadata, nil
}
