// Package catalog provides the static reference data used by the analyzers:
// section labels, skill and industry vocabularies, the role catalog, and the
// course, salary and trending-technology lookups.
// The default catalog is embedded at compile time and may be replaced by a YAML file.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/resume-analyzer/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Fallback texts for roles without lookup data
const (
	NoCoursesFound    = "No specific courses found for this role."
	NoSalaryAvailable = "Salary data not available for this role."
)

// SkillCategories splits skills into display groups
type SkillCategories struct {
	Technical []string `yaml:"technical" json:"technical"`
	Soft      []string `yaml:"soft" json:"soft"`
}

// Catalog is immutable reference data. Accessors return copies.
type Catalog struct {
	sections   []string
	skills     []string
	industries []string
	categories SkillCategories
	roles      []types.Role
	courses    map[string][]string
	salaries   map[string]string
	trending   []string
}

// file mirrors the YAML layout
type file struct {
	Sections        []string            `yaml:"sections"`
	Skills          []string            `yaml:"skills"`
	Industries      []string            `yaml:"industries"`
	SkillCategories SkillCategories     `yaml:"skill_categories"`
	Roles           []types.Role        `yaml:"roles"`
	Courses         map[string][]string `yaml:"courses"`
	Salaries        map[string]string   `yaml:"salaries"`
	Trending        []string            `yaml:"trending"`
}

// LoadError reports a catalog that could not be read or failed validation
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(embeddedCatalog, "embedded")
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads a catalog from path, or returns the embedded catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "failed to read file", Cause: err}
	}
	return Parse(data, path)
}

// Parse decodes and validates catalog YAML. source names the data in errors.
func Parse(data []byte, source string) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &LoadError{Source: source, Message: "invalid YAML", Cause: err}
	}

	seen := make(map[string]bool, len(f.Roles))
	for i, role := range f.Roles {
		name := strings.TrimSpace(role.Name)
		if name == "" {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("role %d has no name", i)}
		}
		if seen[name] {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("duplicate role %q", name)}
		}
		seen[name] = true
		f.Roles[i].Name = name
	}

	return &Catalog{
		sections:   f.Sections,
		skills:     f.Skills,
		industries: f.Industries,
		categories: f.SkillCategories,
		roles:      f.Roles,
		courses:    f.Courses,
		salaries:   f.Salaries,
		trending:   f.Trending,
	}, nil
}

// Sections returns the ordered analysis section labels, or types.DefaultSections when none are set
func (c *Catalog) Sections() []string {
	if len(c.sections) == 0 {
		return clone(types.DefaultSections)
	}
	return clone(c.sections)
}

// Skills returns the skill vocabulary in canonical order
func (c *Catalog) Skills() []string {
	return clone(c.skills)
}

// Industries returns the industry vocabulary in canonical order
func (c *Catalog) Industries() []string {
	return clone(c.industries)
}

// Categories returns the technical and soft skill groups
func (c *Catalog) Categories() SkillCategories {
	return SkillCategories{Technical: clone(c.categories.Technical), Soft: clone(c.categories.Soft)}
}

// Roles returns the role catalog in curated order
func (c *Catalog) Roles() []types.Role {
	roles := make([]types.Role, len(c.roles))
	for i, r := range c.roles {
		roles[i] = types.Role{Name: r.Name, RequiredSkills: clone(r.RequiredSkills)}
	}
	return roles
}

// RoleNames returns the names of all catalog roles in order
func (c *Catalog) RoleNames() []string {
	names := make([]string, len(c.roles))
	for i, r := range c.roles {
		names[i] = r.Name
	}
	return names
}

// HasRole reports whether name is a catalog role
func (c *Catalog) HasRole(name string) bool {
	for _, r := range c.roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Courses returns the suggested courses for role, or a single fallback entry
func (c *Catalog) Courses(role string) []string {
	if courses, ok := c.courses[role]; ok && len(courses) > 0 {
		return clone(courses)
	}
	return []string{NoCoursesFound}
}

// Salary returns the expected salary range for role, or a fallback text
func (c *Catalog) Salary(role string) string {
	if salary, ok := c.salaries[role]; ok && salary != "" {
		return salary
	}
	return NoSalaryAvailable
}

// Trending returns the trending technology list
func (c *Catalog) Trending() []string {
	return clone(c.trending)
}

func clone(in []string) []string {
	return append(make([]string, 0, len(in)), in...)
}
