package analysis

import (
	"github.com/jonathan/resume-analyzer/internal/ranking"
	"github.com/jonathan/resume-analyzer/internal/skills"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// TopRoleCount is how many ranked roles guidance suggests
	TopRoleCount = 9
	// SalaryRoleCount is how many of the top roles get a salary range
	SalaryRoleCount = 3
	// CourseLimit caps the courses listed for the primary role
	CourseLimit = 5
)

// SkillsReport is the rule-based breakdown of free text.
type SkillsReport struct {
	Skills          []string `json:"skills"`
	Industries      []string `json:"industries"`
	ExperienceYears float64  `json:"experience_years"`
}

// SkillsReport finds catalog skills, industries and summed experience years in text.
func (s *Service) SkillsReport(text string) SkillsReport {
	return SkillsReport{
		Skills:          s.Skills(text),
		Industries:      s.Industries(text),
		ExperienceYears: skills.SumExperienceYears(text),
	}
}

// RankRoles ranks the catalog roles against a skill list.
func (s *Service) RankRoles(held []string) []types.RankedRole {
	return ranking.RankRolesFromList(held, s.catalog.Roles())
}

// RankRolesForText ranks the catalog roles against the skills found in text.
func (s *Service) RankRolesForText(text string) []types.RankedRole {
	return ranking.RankRoles(s.skills.MatchSet(text), s.catalog.Roles())
}

// Guidance builds career suggestions for a resume with no target job. When
// no catalog skill is found the role suggestions stay empty.
func (s *Service) Guidance(text string) types.Guidance {
	report := s.SkillsReport(text)
	categories := s.catalog.Categories()

	g := types.Guidance{
		Skills:          report.Skills,
		TechSkills:      intersect(report.Skills, categories.Technical),
		SoftSkills:      intersect(report.Skills, categories.Soft),
		Industries:      report.Industries,
		ExperienceYears: report.ExperienceYears,
		RankedRoles:     s.RankRoles(report.Skills),
		TopRoles:        []string{},
		Courses:         []string{},
		Salaries:        map[string]string{},
		Trending:        s.catalog.Trending(),
	}
	if len(report.Skills) == 0 {
		return g
	}

	g.TopRoles = ranking.Top(g.RankedRoles, TopRoleCount)
	if len(g.TopRoles) == 0 {
		return g
	}
	g.PrimaryRole = g.TopRoles[0]

	courses := s.catalog.Courses(g.PrimaryRole)
	if len(courses) > CourseLimit {
		courses = courses[:CourseLimit]
	}
	g.Courses = courses

	for _, role := range ranking.Top(g.RankedRoles, SalaryRoleCount) {
		g.Salaries[role] = s.catalog.Salary(role)
	}
	return g
}

// intersect keeps the items of list that appear in allowed, in list order.
func intersect(list, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[a] = struct{}{}
	}
	out := make([]string, 0)
	for _, item := range list {
		if _, ok := set[item]; ok {
			out = append(out, item)
		}
	}
	return out
}
