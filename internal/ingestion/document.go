package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported document format.
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// UnsupportedFormatError is returned for documents that are not pdf, docx or plain text.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("unsupported document format: %s (%s)", e.Filename, e.ContentType)
	}
	return fmt.Sprintf("unsupported document format: %s", e.Filename)
}

// Document is the cleaned text of an uploaded file.
type Document struct {
	Text     string    `json:"text"`
	Metadata *Metadata `json:"metadata"`
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br\s*/>|<w:cr\s*/>`)
	docxTab          = regexp.MustCompile(`<w:tab\s*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

// DetectFormat resolves the document format from the file extension, falling
// back to the declared content type.
func DetectFormat(filename, contentType string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	case ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil {
		switch {
		case mediaType == mimePDF:
			return FormatPDF, nil
		case mediaType == mimeDOCX:
			return FormatDOCX, nil
		case mediaType == "text/markdown":
			return FormatMarkdown, nil
		case strings.HasPrefix(mediaType, "text/"):
			return FormatText, nil
		}
	}
	return "", &UnsupportedFormatError{Filename: filename, ContentType: contentType}
}

// ExtractText extracts and cleans the text of a document, choosing the
// format from its filename.
func ExtractText(filename string, data []byte) (*Document, error) {
	return ExtractTextWithType(filename, "", data)
}

// ExtractTextWithType is ExtractText with a declared content type used when
// the filename has no recognised extension.
func ExtractTextWithType(filename, contentType string, data []byte) (*Document, error) {
	format, err := DetectFormat(filename, contentType)
	if err != nil {
		return nil, err
	}

	meta := NewMetadata(data, filename)
	meta.Format = format

	var raw string
	switch format {
	case FormatPDF:
		raw, meta.Pages, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	default:
		raw = string(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")))
	}
	if err != nil {
		return nil, err
	}

	text, err := RequireText(raw)
	if err != nil {
		return nil, err
	}
	return &Document{Text: text, Metadata: meta}, nil
}

func extractPDFText(data []byte) (text string, pages int, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	pages = reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), pages, nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into plain text, one paragraph per line.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, "\t")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
