package main

import (
	"fmt"

	"github.com/jonathan/resume-analyzer/internal/analysis"
	"github.com/jonathan/resume-analyzer/internal/observability"
	"github.com/jonathan/resume-analyzer/internal/types"
	"github.com/spf13/cobra"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List the catalog skills, industries and experience years in a resume",
	RunE:  runSkills,
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Rank catalog roles by skill overlap",
	Long:  "Rank the catalog roles against the skills found in a resume, or against an explicit --skills list.",
	RunE:  runRoles,
}

var guidanceCmd = &cobra.Command{
	Use:   "guidance",
	Short: "Suggest roles, courses and salary ranges for a resume",
	RunE:  runGuidance,
}

var (
	skillsResumeFile string
	rolesSkills      string
)

func init() {
	for _, c := range []*cobra.Command{skillsCmd, rolesCmd, guidanceCmd} {
		c.Flags().StringVarP(&skillsResumeFile, "resume", "r", "", "Path to the resume file")
		rootCmd.AddCommand(c)
	}
	_ = skillsCmd.MarkFlagRequired("resume")
	_ = guidanceCmd.MarkFlagRequired("resume")
	rolesCmd.Flags().StringVar(&rolesSkills, "skills", "", "Comma-separated skills to rank against instead of a resume")
}

// ruleService returns an analysis service for the rule-based commands, which never call the LLM.
func ruleService() (*analysis.Service, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	return analysis.NewService(nil, cat, newLogger()), nil
}

func runSkills(cmd *cobra.Command, _ []string) error {
	text, err := readDocument(skillsResumeFile)
	if err != nil {
		return err
	}
	svc, err := ruleService()
	if err != nil {
		return err
	}

	report := svc.SkillsReport(text)
	return render(cmd, report, func(p *observability.Printer) {
		p.PrintSkills(report.Skills, report.Industries, report.ExperienceYears)
	})
}

func runRoles(cmd *cobra.Command, _ []string) error {
	svc, err := ruleService()
	if err != nil {
		return err
	}

	var ranked []types.RankedRole
	switch {
	case rolesSkills != "" && skillsResumeFile != "":
		return fmt.Errorf("cannot use --skills with --resume")
	case rolesSkills != "":
		ranked = svc.RankRoles(splitList(rolesSkills))
	case skillsResumeFile != "":
		text, err := readDocument(skillsResumeFile)
		if err != nil {
			return err
		}
		ranked = svc.RankRolesForText(text)
	default:
		return fmt.Errorf("must provide either --resume or --skills")
	}

	return render(cmd, ranked, func(p *observability.Printer) { p.PrintRankedRoles(ranked) })
}

func runGuidance(cmd *cobra.Command, _ []string) error {
	text, err := readDocument(skillsResumeFile)
	if err != nil {
		return err
	}
	svc, err := ruleService()
	if err != nil {
		return err
	}

	guidance := svc.Guidance(text)
	return render(cmd, guidance, func(p *observability.Printer) { p.PrintGuidance(&guidance) })
}
