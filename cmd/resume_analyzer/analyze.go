package main

import (
	"context"
	"path/filepath"

	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long:  "Ask the LLM for a sectioned analysis of a resume (pdf, docx, txt or md) and extract the score and sections.",
	RunE:  runAnalyze,
}

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Produce an ATS report for a resume and job role",
	Long:  "Ask the LLM for an applicant-tracking evaluation and report the match percentage, missing keywords and final thoughts.",
	RunE:  runATS,
}

var (
	analyzeResumeFile string
	analyzeJDFile     string
	analyzeJDURL      string
	atsRole           string
)

func init() {
	for _, c := range []*cobra.Command{analyzeCmd, atsCmd} {
		c.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to the resume file")
		c.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to the job description file")
		c.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of the job posting to fetch")
		_ = c.MarkFlagRequired("resume")
		rootCmd.AddCommand(c)
	}
	atsCmd.Flags().StringVar(&atsRole, "role", "", "Job role the resume is evaluated for")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	resume, err := readDocument(analyzeResumeFile)
	if err != nil {
		return err
	}

	session, err := newLLMSession(ctx, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	jd, _, err := session.jobDescription(ctx, analyzeJDFile, analyzeJDURL)
	if err != nil {
		return err
	}

	record, err := session.service.AnalyzeResume(ctx, filepath.Base(analyzeResumeFile), resume, jd)
	if err != nil {
		return err
	}
	return render(cmd, record, func(p *observability.Printer) { p.PrintRecord(&record) })
}

func runATS(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	resume, err := readDocument(analyzeResumeFile)
	if err != nil {
		return err
	}

	session, err := newLLMSession(ctx, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	jd, _, err := session.jobDescription(ctx, analyzeJDFile, analyzeJDURL)
	if err != nil {
		return err
	}

	report, err := session.service.ATSReport(ctx, filepath.Base(analyzeResumeFile), resume, jd, atsRole)
	if err != nil {
		return err
	}
	return render(cmd, report, func(p *observability.Printer) { p.PrintATSReport(&report) })
}
