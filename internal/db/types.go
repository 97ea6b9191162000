package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// Run is a persisted batch run without its records
type Run struct {
	ID             uuid.UUID          `json:"id"`
	JobDescription string             `json:"job_description"`
	JobURL         string             `json:"job_url,omitempty"`
	MinScore       int                `json:"min_score"`
	Summary        types.BatchSummary `json:"summary"`
	CreatedAt      time.Time          `json:"created_at"`
}

// nullIfEmpty returns nil for empty strings so they are stored as NULL
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
