// Package schemas validates exported analysis artifacts against embedded JSON Schemas.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.schema.json
var schemaFS embed.FS

// Schema names an embedded schema.
type Schema string

const (
	AnalysisRecord Schema = "analysis_record"
	BatchReport    Schema = "batch_report"
	ATSReport      Schema = "ats_report"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema Schema
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Schema != "" {
		fmt.Fprintf(&sb, "%s validation failed:\n", ve.Schema)
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Content returns the raw text of an embedded schema
func Content(name Schema) (string, error) {
	path := "json/" + string(name) + ".schema.json"
	data, err := schemaFS.ReadFile(path)
	if err != nil {
		return "", &SchemaLoadError{Path: path, Message: "unknown schema", Cause: err}
	}
	return string(data), nil
}

// Validate marshals v and validates it against the named schema
func Validate(name Schema, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return ValidateBytes(name, data)
}

// ValidateBytes validates a JSON document against the named schema
func ValidateBytes(name Schema, data []byte) error {
	schema, err := Content(name)
	if err != nil {
		return err
	}
	err = ValidateJSONString(schema, string(data))
	if ve, ok := err.(*ValidationError); ok {
		ve.Schema = name
	}
	return err
}

// ValidateFile validates a JSON file on disk against the named schema
func ValidateFile(name Schema, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ValidateBytes(name, data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
