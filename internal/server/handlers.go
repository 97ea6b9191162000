package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-analyzer/internal/coverletter"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/linkedin"
	"github.com/jonathan/resume-analyzer/internal/types"
	"go.uber.org/zap"
)

const (
	defaultMaxUpload = 10 << 20
	multipartMemory  = 32 << 20
	maxJSONBody      = 2 << 20

	maxExtractSections = 32
	maxSectionNameLen  = 64
)

// ExtractRequest is the body of POST /v1/extract
type ExtractRequest struct {
	SourceID string   `json:"source_id,omitempty"`
	Response string   `json:"response"`
	Sections []string `json:"sections,omitempty"`
}

// Validate bounds the caller-supplied section list
func (r *ExtractRequest) Validate() error {
	if len(r.Sections) > maxExtractSections {
		return &ErrValidation{Field: "sections", Message: fmt.Sprintf("at most %d sections allowed", maxExtractSections)}
	}
	for _, name := range r.Sections {
		if utf8.RuneCountInString(strings.TrimSpace(name)) > maxSectionNameLen {
			return &ErrValidation{Field: "sections", Message: fmt.Sprintf("section names must be at most %d characters", maxSectionNameLen)}
		}
	}
	return nil
}

// TextRequest is the body of the rule-based text endpoints
type TextRequest struct {
	Text string `json:"text"`
}

// RolesRequest is the body of POST /v1/roles. Skills wins over Text.
type RolesRequest struct {
	Skills []string `json:"skills,omitempty"`
	Text   string   `json:"text,omitempty"`
}

// RolesResponse lists ranked roles, best first
type RolesResponse struct {
	Skills []string           `json:"skills"`
	Roles  []types.RankedRole `json:"roles"`
}

// LinkedInRequest is the body of POST /v1/linkedin
type LinkedInRequest struct {
	Text           string   `json:"text"`
	TargetSkills   []string `json:"target_skills"`
	JobDescription string   `json:"job_description,omitempty"`
	Suggest        bool     `json:"suggest,omitempty"`
}

// CoverLetterRequest is the body of POST /v1/cover-letter
type CoverLetterRequest struct {
	Resume      coverletter.Resume      `json:"resume"`
	Job         coverletter.Job         `json:"job"`
	Preferences coverletter.Preferences `json:"preferences,omitempty"`
}

// handleExtract runs section extraction on a raw analysis response
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, err)
		return
	}

	sections := req.Sections
	if len(sections) == 0 {
		sections = s.service.Sections()
	}
	record := extraction.Extract(req.Response, sections)
	record.SourceID = req.SourceID
	writeJSON(w, s.logger, http.StatusOK, record)
}

// handleAnalyze runs the sectioned resume analysis
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		s.fail(w, err)
		return
	}
	sourceID, text, err := uploadedText(r, "resume")
	if err != nil {
		s.fail(w, err)
		return
	}
	jd, _, err := s.jobDescription(r.Context(), r)
	if err != nil {
		s.fail(w, err)
		return
	}

	record, err := s.service.AnalyzeResume(r.Context(), sourceID, text, jd)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, record)
}

// handleATS runs the job-role ATS report
func (s *Server) handleATS(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		s.fail(w, err)
		return
	}
	sourceID, text, err := uploadedText(r, "resume")
	if err != nil {
		s.fail(w, err)
		return
	}
	jd, _, err := s.jobDescription(r.Context(), r)
	if err != nil {
		s.fail(w, err)
		return
	}

	report, err := s.service.ATSReport(r.Context(), sourceID, text, jd, r.FormValue("job_role"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, report)
}

// handleSkills reports catalog skills, industries and experience years
func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	var req TextRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.fail(w, &ErrValidation{Field: "text", Message: "required"})
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.service.SkillsReport(req.Text))
}

// handleRoles ranks catalog roles by skill overlap
func (s *Server) handleRoles(w http.ResponseWriter, r *http.Request) {
	var req RolesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}

	var resp RolesResponse
	switch {
	case len(req.Skills) > 0:
		resp = RolesResponse{Skills: req.Skills, Roles: s.service.RankRoles(req.Skills)}
	case strings.TrimSpace(req.Text) != "":
		resp = RolesResponse{Skills: s.service.Skills(req.Text), Roles: s.service.RankRolesForText(req.Text)}
	default:
		s.fail(w, &ErrValidation{Field: "skills", Message: "skills or text is required"})
		return
	}
	writeJSON(w, s.logger, http.StatusOK, resp)
}

// handleGuidance returns career guidance for an uploaded resume
func (s *Server) handleGuidance(w http.ResponseWriter, r *http.Request) {
	if err := s.parseMultipart(w, r); err != nil {
		s.fail(w, err)
		return
	}
	_, text, err := uploadedText(r, "resume")
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, s.service.Guidance(text))
}

// handleLinkedIn analyzes a LinkedIn profile and optionally asks for suggestions
func (s *Server) handleLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req LinkedInRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.fail(w, &ErrValidation{Field: "text", Message: "required"})
		return
	}

	result := linkedin.Analyze(req.Text, req.TargetSkills)
	if req.Suggest && s.client != nil {
		suggestions, err := linkedin.Suggest(r.Context(), s.client, req.Text, req.TargetSkills, req.JobDescription)
		if err != nil {
			s.logger.Warn("linkedin suggestions failed", zap.Error(err))
			suggestions = []string{}
		}
		result.Suggestions = suggestions
	}
	writeJSON(w, s.logger, http.StatusOK, result)
}

// handleCoverLetter drafts a cover letter
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req CoverLetterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if s.client == nil {
		s.fail(w, &ErrUnavailable{Feature: "LLM client"})
		return
	}

	letter, err := coverletter.Generate(r.Context(), s.client, req.Resume, req.Job, req.Preferences)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]string{"cover_letter": letter})
}

func (s *Server) handleTrending(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string][]string{"trending": s.service.Catalog().Trending()})
}

// handleCourses answers unknown roles with the fallback entry and known=false
func (s *Server) handleCourses(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	cat := s.service.Catalog()
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"role":    role,
		"known":   cat.HasRole(role),
		"courses": cat.Courses(role),
	})
}

func (s *Server) handleSalary(w http.ResponseWriter, r *http.Request) {
	role := r.PathValue("role")
	cat := s.service.Catalog()
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"role":   role,
		"known":  cat.HasRole(role),
		"salary": cat.Salary(role),
	})
}

// decodeJSON decodes a size-limited JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// parseMultipart parses a size-limited multipart form
func (s *Server) parseMultipart(w http.ResponseWriter, r *http.Request) error {
	limit := int64(defaultMaxUpload)
	if s.cfg != nil {
		limit = s.cfg.MaxUploadBytes()
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &ErrValidation{Field: "body", Message: "upload too large"}
		}
		return &ErrValidation{Field: "body", Message: "invalid multipart form: " + err.Error()}
	}
	return nil
}

// uploadedText extracts the text of the file uploaded under field
func uploadedText(r *http.Request, field string) (sourceID, text string, err error) {
	_, header, err := r.FormFile(field)
	if err != nil {
		return "", "", &ErrValidation{Field: field, Message: "file is required"}
	}
	data, err := readFileHeader(header)
	if err != nil {
		return header.Filename, "", err
	}
	doc, err := ingestion.ExtractTextWithType(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		return header.Filename, "", err
	}
	return header.Filename, doc.Text, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// jobDescription returns the job_description field, or fetches job_description_url
func (s *Server) jobDescription(ctx context.Context, r *http.Request) (text, url string, err error) {
	if jd := strings.TrimSpace(r.FormValue("job_description")); jd != "" {
		return jd, "", nil
	}
	url = strings.TrimSpace(r.FormValue("job_description_url"))
	if url == "" {
		return "", "", &ErrValidation{Field: "job_description", Message: "job_description or job_description_url is required"}
	}
	if s.fetcher == nil {
		return "", url, &ErrUnavailable{Feature: "job description fetching"}
	}
	desc, err := s.fetcher.FetchJobDescription(ctx, url)
	if err != nil {
		return "", url, err
	}
	return desc.Text, url, nil
}
