package types

// Role is a catalog entry pairing a job role with the skills it requires
type Role struct {
	Name           string   `json:"name" yaml:"name"`
	RequiredSkills []string `json:"required_skills" yaml:"skills"`
}

// RankedRole is a role with the number of required skills a candidate holds
type RankedRole struct {
	Name          string   `json:"name"`
	MatchCount    int      `json:"match_count"`
	RequiredCount int      `json:"required_count"`
	MatchedSkills []string `json:"matched_skills"`
}

// Guidance is the career advice produced for a resume without a target role
type Guidance struct {
	Skills          []string          `json:"skills"`
	TechSkills      []string          `json:"tech_skills"`
	SoftSkills      []string          `json:"soft_skills"`
	Industries      []string          `json:"industries"`
	ExperienceYears float64           `json:"experience_years"`
	RankedRoles     []RankedRole      `json:"ranked_roles"`
	TopRoles        []string          `json:"top_roles"`
	PrimaryRole     string            `json:"primary_role,omitempty"`
	Courses         []string          `json:"courses"`
	Salaries        map[string]string `json:"salaries"`
	Trending        []string          `json:"trending"`
}
