package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/server"
	"github.com/jonathan/resume-analyzer/internal/server/ratelimit"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume analysis and HR batch ranking.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	apiKey := apiKeyFlag
	if apiKey == "" {
		apiKey = cfg.GeminiAPIKey
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	store, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to connect to cache: %w", err)
	}
	defer func() { _ = store.Close() }()

	gemini, err := llm.NewClient(ctx, llmConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	client := llm.NewCachedClient(gemini, store, cfg.CacheTTL, logger)
	defer func() { _ = client.Close() }()

	deps := server.Deps{
		Config:      cfg,
		Service:     analysis.NewService(client, cat, logger),
		Client:      client,
		Fetcher:     newJobFetcher(store, cfg.UseBrowser, logger),
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
		Logger:      logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		deps.Runs = database
	} else {
		logger.Warn("DATABASE_URL not set, batch runs will not be persisted")
	}

	if cfg.HRAuthEnabled() {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return fmt.Errorf("HR authentication is configured but JWT is not: %w", err)
		}
		passwords, err := config.NewPasswordConfig()
		if err != nil {
			return err
		}
		deps.JWT = server.NewJWTService(jwtConfig)
		deps.Passwords = passwords
	} else {
		logger.Warn("HR_PASSWORD_HASH not set, HR endpoints are disabled")
	}

	return server.New(deps).Start(ctx)
}
