// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "ResumeProfile")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string // Description for the LLM
	Required    bool
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent details.\n")
	sb.WriteString("- Use an empty string or empty list when the text has no such information.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// ResumeProfileSchema returns the extraction schema for the applicant details
// a cover letter needs.
func ResumeProfileSchema() ExtractionSchema {
	return ExtractionSchema{
		Name:        "ResumeProfile",
		Description: `You are an expert resume parser. Extract the applicant's details from the resume text below.`,
		Fields: []SchemaField{
			{Name: "name", Type: "\"string\"", Description: "Applicant full name", Required: true},
			{Name: "contact", Type: "\"string\"", Description: "Email, phone and location on one line"},
			{Name: "skills", Type: "[\"string\"]", Description: "Skills and technologies", Required: true},
			{Name: "experience", Type: "[\"string\"]", Description: "One entry per role: title, company, dates"},
			{Name: "education", Type: "[\"string\"]", Description: "One entry per degree"},
			{Name: "summary", Type: "\"string\"", Description: "Summary or objective, verbatim if present"},
		},
	}
}
