package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Print the cleaned text the analyzer extracts from a document",
	Long:  "Extract and clean the text of a pdf, docx, txt or md file exactly as the analysis commands see it.",
	RunE:  runIngest,
}

var (
	ingestInputFile string
	ingestMetadata  bool
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestInputFile, "in", "i", "", "Path to the document")
	ingestCmd.Flags().BoolVar(&ingestMetadata, "metadata", false, "Print the document metadata to stderr")
	_ = ingestCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	text, meta, err := ingestion.IngestFromFile(ingestInputFile)
	if err != nil {
		return err
	}

	if ingestMetadata {
		metaJSON, err := meta.ToJSON()
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), string(metaJSON))
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), ingestion.Document{Text: text, Metadata: meta})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}
