package main

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/coverletter"
	"github.com/spf13/cobra"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter for a job",
	Long: "Draft a cover letter with the LLM. Applicant details come from --name/--skills, " +
		"or are extracted from --resume when those flags are omitted.",
	RunE: runCoverLetter,
}

var (
	coverName        string
	coverSkills      string
	coverResumeFile  string
	coverJobTitle    string
	coverCompany     string
	coverJDFile      string
	coverPreferences map[string]string
	coverOutputFile  string
)

func init() {
	coverLetterCmd.Flags().StringVar(&coverName, "name", "", "Applicant name")
	coverLetterCmd.Flags().StringVar(&coverSkills, "skills", "", "Comma-separated applicant skills")
	coverLetterCmd.Flags().StringVarP(&coverResumeFile, "resume", "r", "", "Resume to extract applicant details from")
	coverLetterCmd.Flags().StringVar(&coverJobTitle, "job-title", "", "Title of the position")
	coverLetterCmd.Flags().StringVar(&coverCompany, "company", "", "Company name")
	coverLetterCmd.Flags().StringVar(&coverJDFile, "jd", "", "Path to the job description file")
	coverLetterCmd.Flags().StringToStringVar(&coverPreferences, "pref", nil, "Writing preferences such as tone=formal,length=short")
	coverLetterCmd.Flags().StringVarP(&coverOutputFile, "out", "o", "", "Write the letter to this path instead of stdout")
	_ = coverLetterCmd.MarkFlagRequired("job-title")
	_ = coverLetterCmd.MarkFlagRequired("company")
	_ = coverLetterCmd.MarkFlagRequired("jd")

	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	if coverResumeFile == "" && (coverName == "" || coverSkills == "") {
		return fmt.Errorf("must provide either --resume or both --name and --skills")
	}

	jd, err := readDocument(coverJDFile)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	session, err := newLLMSession(ctx, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	resume := coverletter.Resume{Name: coverName, Skills: splitList(coverSkills)}
	if coverResumeFile != "" {
		text, err := readDocument(coverResumeFile)
		if err != nil {
			return err
		}
		extracted, err := coverletter.ExtractProfile(ctx, session.client, text)
		if err != nil {
			return err
		}
		resume = mergeProfile(*extracted, resume)
	}

	job := coverletter.Job{Title: coverJobTitle, CompanyName: coverCompany, Description: jd}
	letter, err := coverletter.Generate(ctx, session.client, resume, job, coverPreferences)
	if err != nil {
		return err
	}

	if coverOutputFile != "" {
		return writeTextFile(coverOutputFile, letter)
	}
	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), map[string]string{"cover_letter": letter})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), letter)
	return err
}

// mergeProfile overrides extracted details with the ones given on the command line.
func mergeProfile(extracted, flags coverletter.Resume) coverletter.Resume {
	if flags.Name != "" {
		extracted.Name = flags.Name
	}
	if len(flags.Skills) > 0 {
		extracted.Skills = flags.Skills
	}
	return extracted
}
