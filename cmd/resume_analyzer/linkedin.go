package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/linkedin"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var linkedinCmd = &cobra.Command{
	Use:   "linkedin",
	Short: "Analyze a LinkedIn profile export against target skills",
	Long:  "Score a LinkedIn profile against target skills and count experience years, projects and degrees. --suggest asks the LLM for improvements.",
	RunE:  runLinkedIn,
}

var (
	linkedinProfileFile string
	linkedinSkills      string
	linkedinJDFile      string
	linkedinSuggest     bool
)

func init() {
	linkedinCmd.Flags().StringVarP(&linkedinProfileFile, "profile", "p", "", "Path to the profile text or PDF export")
	linkedinCmd.Flags().StringVar(&linkedinSkills, "skills", "", "Comma-separated target skills")
	linkedinCmd.Flags().StringVar(&linkedinJDFile, "jd", "", "Path to a job description used for suggestions")
	linkedinCmd.Flags().BoolVar(&linkedinSuggest, "suggest", false, "Ask the LLM for profile suggestions")
	_ = linkedinCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(linkedinCmd)
}

func runLinkedIn(cmd *cobra.Command, _ []string) error {
	profile, err := readDocument(linkedinProfileFile)
	if err != nil {
		return err
	}
	targets := splitList(linkedinSkills)
	result := linkedin.Analyze(profile, targets)

	if linkedinSuggest {
		ctx := context.Background()
		logger := newLogger()
		defer func() { _ = logger.Sync() }()

		var jd string
		if linkedinJDFile != "" {
			if jd, err = readDocument(linkedinJDFile); err != nil {
				return err
			}
		}

		session, err := newLLMSession(ctx, logger)
		if err != nil {
			return err
		}
		defer session.Close()

		suggestions, err := linkedin.Suggest(ctx, session.client, profile, targets, jd)
		if err != nil {
			logger.Warn("linkedin suggestions failed", zap.Error(err))
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			suggestions = []string{}
		}
		result.Suggestions = suggestions
	}

	return render(cmd, result, func(p *observability.Printer) { p.PrintLinkedIn(&result) })
}
