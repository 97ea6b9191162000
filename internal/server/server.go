// Package server provides the HTTP REST API for the resume analyzer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/server/middleware"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/jonathan/resume-analyzer/internal/types"
	"go.uber.org/zap"
)

// RunStore persists batch reports.
type RunStore interface {
	SaveBatchReport(ctx context.Context, report *types.BatchReport, jobDescription, jobURL string) (uuid.UUID, error)
	GetBatchReport(ctx context.Context, runID uuid.UUID) (*types.BatchReport, error)
	Ping(ctx context.Context) error
}

// JobDescriptionFetcher resolves a job posting URL to its description text.
type JobDescriptionFetcher interface {
	FetchJobDescription(ctx context.Context, url string) (*fetch.JobDescription, error)
}

// Deps are the collaborators a Server is built from. Runs and Fetcher are
// optional; the endpoints that need them answer 503 when they are nil.
type Deps struct {
	Config      *config.Config
	Service     *analysis.Service
	Client      llm.Client
	Fetcher     JobDescriptionFetcher
	Runs        RunStore
	JWT         *JWTService
	Passwords   *config.PasswordConfig
	RateLimiter *ratelimit.Limiter
	Logger      *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	service     *analysis.Service
	client      llm.Client
	fetcher     JobDescriptionFetcher
	runs        RunStore
	rateLimiter *ratelimit.Limiter
	authHandler *AuthHandler
	jwtService  *JWTService
	logger      *zap.Logger
}

// New creates a new server instance
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	s := &Server{
		cfg:         deps.Config,
		service:     deps.Service,
		client:      deps.Client,
		fetcher:     deps.Fetcher,
		runs:        deps.Runs,
		rateLimiter: limiter,
		jwtService:  deps.JWT,
		logger:      logger,
	}
	s.authHandler = NewAuthHandler(deps.Config, deps.Passwords, deps.JWT, logger)

	s.httpServer = &http.Server{
		Addr:         deps.Config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 15 * time.Minute, // batches of LLM calls run long
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /v1/extract", s.handleExtract)
	mux.HandleFunc("POST /v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /v1/ats", s.handleATS)
	mux.HandleFunc("POST /v1/skills", s.handleSkills)
	mux.HandleFunc("POST /v1/roles", s.handleRoles)
	mux.HandleFunc("POST /v1/guidance", s.handleGuidance)
	mux.HandleFunc("POST /v1/linkedin", s.handleLinkedIn)
	mux.HandleFunc("POST /v1/cover-letter", s.handleCoverLetter)

	mux.HandleFunc("GET /v1/catalog/trending", s.handleTrending)
	mux.HandleFunc("GET /v1/catalog/courses/{role}", s.handleCourses)
	mux.HandleFunc("GET /v1/catalog/salaries/{role}", s.handleSalary)

	mux.HandleFunc("POST /v1/auth/token", s.authHandler.Token)

	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("POST /v1/hr/batch", auth(http.HandlerFunc(s.handleBatch)))
	mux.Handle("POST /v1/hr/batch/stream", auth(http.HandlerFunc(s.handleBatchStream)))
	mux.Handle("GET /v1/runs/{id}", auth(http.HandlerFunc(s.handleGetRun)))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps SSE streaming working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "disabled"}
	if s.runs != nil {
		status["database"] = "ok"
		if err := s.runs.Ping(r.Context()); err != nil {
			status["database"] = "unreachable"
		}
	}
	writeJSON(w, s.logger, http.StatusOK, status)
}

// clientID extracts the client identifier (IP address) from the request.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded", zap.Int("limit", info.Limit), zap.Time("reset", info.ResetTime))
	writeJSON(w, s.logger, http.StatusTooManyRequests, response)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// writeError writes an error JSON response
func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, map[string]string{"error": message})
}

// fail maps err to a status code and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	writeError(w, s.logger, status, err.Error())
}
