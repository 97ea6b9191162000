package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/types"
	"go.uber.org/zap"
)

// batchRequest is a parsed HR batch upload
type batchRequest struct {
	docs           []analysis.Document
	jobDescription string
	jobURL         string
	minScore       int
	persist        bool
}

// parseBatch reads the resumes, job description and threshold of a batch upload
func (s *Server) parseBatch(w http.ResponseWriter, r *http.Request) (*batchRequest, error) {
	if err := s.parseMultipart(w, r); err != nil {
		return nil, err
	}

	headers := r.MultipartForm.File["resumes"]
	headers = append(headers, r.MultipartForm.File["resumes[]"]...)
	if len(headers) == 0 {
		return nil, &ErrValidation{Field: "resumes", Message: "at least one file is required"}
	}

	req := &batchRequest{persist: s.runs != nil && r.FormValue("persist") != "false"}
	for _, header := range headers {
		data, err := readFileHeader(header)
		req.docs = append(req.docs, analysis.Document{
			SourceID:    header.Filename,
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Err:         err,
		})
	}

	if raw := strings.TrimSpace(r.FormValue("min_score")); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil || score < 0 || score > 100 {
			return nil, &ErrValidation{Field: "min_score", Message: "must be an integer between 0 and 100"}
		}
		req.minScore = score
	}

	jd, url, err := s.jobDescription(r.Context(), r)
	if err != nil {
		return nil, err
	}
	req.jobDescription, req.jobURL = jd, url
	return req, nil
}

// runBatch analyzes the batch and persists it when requested
func (s *Server) runBatch(ctx context.Context, req *batchRequest, onProgress func(types.BatchProgress)) (*types.BatchReport, error) {
	concurrency := analysis.DefaultConcurrency
	if s.cfg != nil {
		concurrency = s.cfg.BatchConcurrency
	}

	report, err := s.service.AnalyzeBatch(ctx, req.docs, req.jobDescription, analysis.BatchOptions{
		Concurrency: concurrency,
		MinScore:    req.minScore,
		OnProgress:  onProgress,
	})
	if err != nil {
		return nil, err
	}

	if req.persist {
		s.persist(ctx, report, req.jobDescription, req.jobURL)
	}
	return report, nil
}

// persist validates and stores a report, setting its RunID on success.
// Failures are logged, not returned, and leave the report without a RunID.
func (s *Server) persist(ctx context.Context, report *types.BatchReport, jobDescription, jobURL string) {
	if err := schemas.Validate(schemas.BatchReport, report); err != nil {
		s.logger.Error("batch report failed validation, not persisted", zap.Error(err))
		return
	}
	runID, err := s.runs.SaveBatchReport(ctx, report, jobDescription, jobURL)
	if err != nil {
		s.logger.Error("failed to persist batch report", zap.Int("items", len(report.Items)), zap.Error(err))
		return
	}
	report.RunID = runID.String()
}

// handleBatch analyzes an uploaded resume batch and returns the report
func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseBatch(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	subject, _ := middleware.GetSubject(r)
	s.logger.Info("batch started", zap.String("subject", subject), zap.Int("documents", len(req.docs)))

	report, err := s.runBatch(r.Context(), req, nil)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, report)
}

// handleBatchStream is handleBatch with SSE progress events
func (s *Server) handleBatchStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseBatch(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}

	stream, err := newBatchStream(w)
	if err != nil {
		writeError(w, s.logger, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := s.runBatch(r.Context(), req, func(p types.BatchProgress) {
		if err := stream.Progress(p); err != nil {
			s.logger.Debug("progress event dropped", zap.Error(err))
		}
	})
	if err != nil {
		if err := stream.Fail(err); err != nil {
			s.logger.Debug("error event dropped", zap.Error(err))
		}
		return
	}
	if err := stream.Complete(report); err != nil {
		s.logger.Debug("complete event dropped", zap.Error(err))
	}
}

// handleGetRun returns a persisted batch report
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.fail(w, &ErrUnavailable{Feature: "run persistence"})
		return
	}

	id := r.PathValue("id")
	runID, err := uuid.Parse(id)
	if err != nil {
		s.fail(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	report, err := s.runs.GetBatchReport(r.Context(), runID)
	if err != nil {
		s.fail(w, err)
		return
	}
	if report == nil {
		s.fail(w, &ErrNotFound{Resource: "run", ID: id})
		return
	}
	writeJSON(w, s.logger, http.StatusOK, report)
}
