package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	fieldErr := validator.New().Struct(&types.TokenRequest{})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"validation", &ErrValidation{Field: "text", Message: "required"}, http.StatusBadRequest},
		{"validator fields", fmt.Errorf("invalid resume: %w", fieldErr), http.StatusBadRequest},
		{"not found", &ErrNotFound{Resource: "run", ID: "x"}, http.StatusNotFound},
		{"unsupported format", &ingestion.UnsupportedFormatError{Filename: "a.exe"}, http.StatusUnsupportedMediaType},
		{"empty text", ingestion.ErrEmptyText, http.StatusUnprocessableEntity},
		{"no job description", fmt.Errorf("fetch: %w", fetch.ErrNoDescription), http.StatusUnprocessableEntity},
		{"unavailable", &ErrUnavailable{Feature: "run persistence"}, http.StatusServiceUnavailable},
		{"deadline", fmt.Errorf("analysis: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"fetch error", &fetch.Error{URL: "https://x", Message: "status 500"}, http.StatusBadGateway},
		{"llm api error", fmt.Errorf("resume analysis failed: %w", &llm.APICallError{Model: "m", Message: "quota"}), http.StatusBadGateway},
		{"empty llm response", llm.ErrEmptyResponse, http.StatusBadGateway},
		{"schema validation", &schemas.ValidationError{Schema: schemas.BatchReport}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestValidationMessage(t *testing.T) {
	err := validator.New().Struct(&types.TokenRequest{Password: "x"})
	assert.Equal(t, "validation error: Username - required", validationMessage(err))
	assert.Equal(t, "plain", validationMessage(errors.New("plain")))
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrNotFound{Resource: "run", ID: "42"}).Error(), "42")
	assert.Contains(t, (&ErrValidation{Field: "min_score", Message: "too big"}).Error(), "min_score")
	assert.Contains(t, (&ErrUnavailable{Feature: "HR authentication"}).Error(), "HR authentication")
}
