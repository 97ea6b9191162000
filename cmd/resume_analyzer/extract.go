package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract sections and score from a saved analysis response",
	Long:  "Run section extraction over a raw LLM analysis response without calling the LLM. Sections default to the catalog section list.",
	RunE:  runExtract,
}

var (
	extractInputFile string
	extractSourceID  string
	extractSections  string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to the raw analysis response")
	extractCmd.Flags().StringVar(&extractSourceID, "source", "", "Source identifier recorded in the output (defaults to the input path)")
	extractCmd.Flags().StringVar(&extractSections, "sections", "", "Comma-separated section names (defaults to the catalog sections)")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	sections := splitList(extractSections)
	if len(sections) == 0 {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		sections = cat.Sections()
	}

	record := extraction.Extract(string(content), sections)
	record.SourceID = extractSourceID
	if record.SourceID == "" {
		record.SourceID = extractInputFile
	}

	if jsonOutput {
		if err := schemas.Validate(schemas.AnalysisRecord, record); err != nil {
			return fmt.Errorf("extracted record does not validate against schema: %w", err)
		}
	}
	return render(cmd, record, func(p *observability.Printer) { p.PrintRecord(&record) })
}
