// Package main provides the entry point for the resume analyzer CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	jsonOutput  bool
	catalogPath string
	apiKeyFlag  string
	modelFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Resume Analyzer CLI and HTTP API Server",
	Long: "Resume Analyzer scores resumes against job descriptions, extracts sectioned feedback, " +
		"ranks candidate batches for HR and suggests career paths from a skill catalog.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of formatted output")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Path to a catalog YAML file (overrides CATALOG_PATH)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Gemini model for resume analysis and ATS reports")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
