package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newLogger returns a development logger in verbose mode and a no-op logger otherwise.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// loadCatalog resolves --catalog, then CATALOG_PATH, then the embedded catalog.
func loadCatalog() (*catalog.Catalog, error) {
	path := catalogPath
	if path == "" {
		path = os.Getenv("CATALOG_PATH")
	}
	return catalog.Load(path)
}

// llmSession is an LLM-backed analysis service with its cleanup.
type llmSession struct {
	cfg     *config.Config
	client  llm.Client
	store   cache.Cache
	service *analysis.Service
	logger  *zap.Logger
}

func (s *llmSession) Close() {
	if err := s.client.Close(); err != nil {
		s.logger.Warn("failed to close LLM client", zap.Error(err))
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("failed to close cache", zap.Error(err))
	}
}

// newLLMSession loads the configuration and builds a cached Gemini client
// and an analysis service on top of it.
func newLLMSession(ctx context.Context, logger *zap.Logger) (*llmSession, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = cfg.GeminiAPIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}

	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}

	store, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}

	gemini, err := llm.NewClient(ctx, llmConfig(), apiKey)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	client := llm.NewCachedClient(gemini, store, cfg.CacheTTL, logger)

	return &llmSession{
		cfg:     cfg,
		client:  client,
		store:   store,
		service: analysis.NewService(client, cat, logger),
		logger:  logger,
	}, nil
}

// llmConfig returns the default model configuration with --model applied.
func llmConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if modelFlag != "" {
		cfg = cfg.WithModel(llm.TierStandard, modelFlag)
	}
	return cfg
}

// newJobFetcher returns a fetcher that caches descriptions in store and
// renders JS-heavy pages with headless Chrome when useBrowser is set.
func newJobFetcher(store cache.Cache, useBrowser bool, logger *zap.Logger) *fetch.JobFetcher {
	f := fetch.NewJobFetcher(logger)
	f.Cache = store
	if useBrowser {
		f.Renderer = fetch.NewChromeRenderer(logger)
	}
	return f
}

// readDocument extracts the cleaned text of a resume, profile or job description file.
func readDocument(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("file path is required")
	}
	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return text, nil
}

// jobDescription reads --jd from disk or fetches --jd-url.
func (s *llmSession) jobDescription(ctx context.Context, path, url string) (text, source string, err error) {
	switch {
	case path != "" && url != "":
		return "", "", fmt.Errorf("cannot use --jd with --jd-url")
	case path != "":
		text, err := readDocument(path)
		return text, "", err
	case url != "":
		fetcher := newJobFetcher(s.store, s.cfg.UseBrowser, s.logger)
		desc, err := fetcher.FetchJobDescription(ctx, url)
		if err != nil {
			return "", url, fmt.Errorf("failed to fetch job description: %w", err)
		}
		return desc.Text, url, nil
	default:
		return "", "", fmt.Errorf("must provide either --jd or --jd-url")
	}
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// render prints v as JSON with --json and through print otherwise.
func render(cmd *cobra.Command, v any, print func(*observability.Printer)) error {
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	print(observability.NewPrinter(cmd.OutOrStdout()))
	return nil
}

// writeTextFile writes content with a trailing newline.
func writeTextFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
