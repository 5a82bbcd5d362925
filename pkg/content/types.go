// Package content holds the portfolio data model, the embedded default
// dataset and the project filters.
package content

// Dataset represents the complete portfolio content.
type Dataset struct {
	Personal          PersonalInfo    `json:"personal" yaml:"personal"`
	ProjectCategories []string        `json:"project_categories" yaml:"project_categories"`
	Projects          []Project       `json:"projects" yaml:"projects"`
	SkillCategories   []SkillCategory `json:"skill_categories" yaml:"skill_categories"`
	Ecosystem         TechEcosystem   `json:"ecosystem" yaml:"ecosystem"`
	Roles             []JobRole       `json:"roles" yaml:"roles"`
}

// PersonalInfo represents biographical information.
type PersonalInfo struct {
	Name     string            `json:"name" yaml:"name"`
	Title    string            `json:"title" yaml:"title"`
	Tagline  string            `json:"tagline" yaml:"tagline"`
	Bio      string            `json:"bio" yaml:"bio"`
	Location string            `json:"location" yaml:"location"`
	Email    string            `json:"email" yaml:"email"`
	Phone    string            `json:"phone,omitempty" yaml:"phone,omitempty"`
	Links    map[string]string `json:"links" yaml:"links"`
}

// Project represents a single portfolio project.
type Project struct {
	ID           string            `json:"id" yaml:"id"`
	Title        string            `json:"title" yaml:"title"`
	Description  string            `json:"description" yaml:"description"`
	Category     string            `json:"category" yaml:"category"`
	Timeline     string            `json:"timeline" yaml:"timeline"`
	Featured     bool              `json:"featured,omitempty" yaml:"featured,omitempty"`
	Tags         []string          `json:"tags" yaml:"tags"`
	Technologies []string          `json:"technologies" yaml:"technologies"`
	Outcomes     []string          `json:"outcomes" yaml:"outcomes"`
	Metrics      []Metric          `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Details      *TechnicalDetails `json:"details,omitempty" yaml:"details,omitempty"`
}

// Metric is a name/value/improvement triple attached to a project.
type Metric struct {
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Improvement string `json:"improvement,omitempty" yaml:"improvement,omitempty"`
}

// TechnicalDetails holds the optional deep-dive section of a project.
type TechnicalDetails struct {
	Architecture string   `json:"architecture,omitempty" yaml:"architecture,omitempty"`
	Pipeline     []string `json:"pipeline,omitempty" yaml:"pipeline,omitempty"`
	Challenges   []string `json:"challenges,omitempty" yaml:"challenges,omitempty"`
}

// SkillCategory groups skills for display.
type SkillCategory struct {
	Name   string  `json:"name" yaml:"name"`
	Skills []Skill `json:"skills" yaml:"skills"`
}

// Skill represents one skill and its proficiency.
type Skill struct {
	Name         string   `json:"name" yaml:"name"`
	Level        int      `json:"level" yaml:"level"` // 0-100
	Experience   string   `json:"experience" yaml:"experience"`
	Tools        []string `json:"tools" yaml:"tools"`
	Achievements []string `json:"achievements,omitempty" yaml:"achievements,omitempty"`
}

// Node status values.
const (
	StatusActive   = "active"
	StatusLearning = "learning"
	StatusPlanned  = "planned"
)

// Node level values, from the centre of a radial layout outwards.
const (
	LevelCore      = "core"
	LevelPrimary   = "primary"
	LevelSecondary = "secondary"
	LevelAuxiliary = "auxiliary"
)

// Levels lists the node levels in rank order.
//
//nolint:gochecknoglobals // Fixed enum
var Levels = []string{LevelCore, LevelPrimary, LevelSecondary, LevelAuxiliary}

// TechEcosystem is a named set of technology nodes.
type TechEcosystem struct {
	Name  string     `json:"name" yaml:"name"`
	Nodes []TechNode `json:"nodes" yaml:"nodes"`
}

// TechNode represents one technology in the ecosystem map.
type TechNode struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Level       string   `json:"level" yaml:"level"`
	Proficiency int      `json:"proficiency" yaml:"proficiency"` // 0-100
	Status      string   `json:"status" yaml:"status"`
	Connections []string `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// JobRole is a résumé target.
type JobRole struct {
	ID             string        `json:"id" yaml:"id"`
	Title          string        `json:"title" yaml:"title"`
	Summary        string        `json:"summary" yaml:"summary"`
	Skills         []SkillGroup  `json:"skills" yaml:"skills"`
	Experience     []Experience  `json:"experience" yaml:"experience"`
	Projects       []RoleProject `json:"projects" yaml:"projects"`
	Education      []Education   `json:"education,omitempty" yaml:"education,omitempty"`
	Publications   []Publication `json:"publications,omitempty" yaml:"publications,omitempty"`
	Certifications []Certificate `json:"certifications,omitempty" yaml:"certifications,omitempty"`
}

// SkillGroup is one cell of the résumé skills grid.
type SkillGroup struct {
	Group string   `json:"group" yaml:"group"`
	Items []string `json:"items" yaml:"items"`
}

// Experience is one position in the résumé experience list.
type Experience struct {
	Company    string   `json:"company" yaml:"company"`
	Role       string   `json:"role" yaml:"role"`
	Dates      string   `json:"dates" yaml:"dates"`
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Highlights []string `json:"highlights" yaml:"highlights"`
}

// RoleProject references a project from the dataset with role-specific lines.
type RoleProject struct {
	ID         string   `json:"id" yaml:"id"`
	Highlights []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
}

// Education is one degree or program.
type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Dates       string `json:"dates" yaml:"dates"`
}

// Publication is a paper, article or talk.
type Publication struct {
	Title string `json:"title" yaml:"title"`
	Venue string `json:"venue" yaml:"venue"`
	Year  string `json:"year" yaml:"year"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Certificate is a professional certification.
type Certificate struct {
	Name   string `json:"name" yaml:"name"`
	Issuer string `json:"issuer" yaml:"issuer"`
	Year   string `json:"year" yaml:"year"`
}

// HasSecondPage reports whether the role carries publications or certifications.
func (r *JobRole) HasSecondPage() (result bool) {
	result = len(r.Publications) > 0 || len(r.Certifications) > 0
	return result
}
