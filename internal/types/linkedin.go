package types

// LinkedInAnalysis is the heuristic breakdown of a LinkedIn profile text
type LinkedInAnalysis struct {
	SkillMatchScore float64  `json:"skill_match_score"`
	SkillsFound     []string `json:"skills_found"`
	ExperienceYears float64  `json:"experience_years"`
	ProjectCount    int      `json:"project_count"`
	Degrees         []string `json:"degrees"`
	// Suggestions is filled only when LLM suggestions were requested
	Suggestions []string `json:"suggestions,omitempty"`
}
