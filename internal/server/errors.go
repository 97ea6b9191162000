package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/schemas"
)

// ErrInvalidCredentials indicates invalid HR credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing resource
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnavailable indicates a feature whose backing service is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		invalidCreds *ErrInvalidCredentials
		validation   *ErrValidation
		notFound     *ErrNotFound
		unavailable  *ErrUnavailable
		fields       validator.ValidationErrors
		unsupported  *ingestion.UnsupportedFormatError
		fetchErr     *fetch.Error
		apiErr       *llm.APICallError
		schemaErr    *schemas.ValidationError
	)

	switch {
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &validation), errors.As(err, &fields):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrEmptyText), errors.Is(err, fetch.ErrNoDescription):
		return http.StatusUnprocessableEntity
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &fetchErr), errors.As(err, &apiErr), errors.Is(err, llm.ErrEmptyResponse):
		return http.StatusBadGateway
	case errors.As(err, &schemaErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage returns the first field error of a validator error.
func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return fmt.Sprintf("validation error: %s - %s", fields[0].Field(), fields[0].Tag())
	}
	return err.Error()
}
