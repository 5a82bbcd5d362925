// Package metrics derives display scores and relationship strengths from
// portfolio content. Every formula takes its weights as an explicit struct.
package metrics

import (
	"math"
	"strings"

	"github.com/nikogura/portfolio/pkg/content"
)

// ProjectScores bundles the derived display scores of a project.
type ProjectScores struct {
	Complexity int `json:"complexity"`
	Impact     int `json:"impact"`
}

// Score computes both display scores for p with the default weights.
func Score(p content.Project) (scores ProjectScores) {
	scores = ProjectScores{
		Complexity: ProjectComplexity(p, DefaultComplexityWeights),
		Impact:     ProjectImpact(p, DefaultImpactWeights),
	}
	return scores
}

// ProjectComplexity scores how technically involved a project is, 0-100.
func ProjectComplexity(p content.Project, w ComplexityWeights) (score int) {
	raw := w.Base +
		w.Technology*float64(len(p.Technologies)) +
		w.Metric*float64(len(p.Metrics))

	if p.Details != nil {
		raw += w.PipelineStep * float64(len(p.Details.Pipeline))
		raw += w.Challenge * float64(len(p.Details.Challenges))
		if strings.TrimSpace(p.Details.Architecture) != "" {
			raw += w.Architecture
		}
	}

	score = clampScore(raw)
	return score
}

// ProjectImpact scores the reported outcome of a project, 0-100.
func ProjectImpact(p content.Project, w ImpactWeights) (score int) {
	raw := w.Base +
		w.Outcome*float64(len(p.Outcomes)) +
		w.Metric*float64(len(p.Metrics))

	for _, m := range p.Metrics {
		if strings.TrimSpace(m.Improvement) != "" {
			raw += w.Improvement
		}
	}

	if p.Featured {
		raw += w.Featured
	}

	score = clampScore(raw)
	return score
}

// RelationshipStrength scores the link between two ecosystem nodes, 0-1.
func RelationshipStrength(a, b content.TechNode, w RelationshipWeights) (strength float64) {
	strength = w.Base

	if a.Category != "" && a.Category == b.Category {
		strength += w.SameCategory
	}

	if lists(a.Connections, b.ID) && lists(b.Connections, a.ID) {
		strength += w.Mutual
	}

	lower := math.Min(float64(a.Proficiency), float64(b.Proficiency))
	strength += w.Proficiency * lower / 100

	strength = clampUnit(strength)
	return strength
}

// SkillOverlap scores the relationship between two skills from shared tools
// and level similarity, 0-1. sameCategory reports whether both skills belong
// to one SkillCategory.
func SkillOverlap(a, b content.Skill, sameCategory bool, w OverlapWeights) (strength float64) {
	strength = w.Shared * jaccard(a.Tools, b.Tools)

	diff := math.Abs(float64(a.Level - b.Level))
	strength += w.Similarity * (1 - diff/100)

	if sameCategory {
		strength += w.SameGroup
	}

	strength = clampUnit(strength)
	return strength
}

// ProjectAffinity scores how closely two projects collaborate through shared
// tags and technologies, 0-1. The similarity term compares complexity scored
// with cw.
func ProjectAffinity(a, b content.Project, cw ComplexityWeights, w OverlapWeights) (strength float64) {
	shared := append(append([]string{}, a.Tags...), a.Technologies...)
	other := append(append([]string{}, b.Tags...), b.Technologies...)

	strength = w.Shared * jaccard(shared, other)

	ca := float64(ProjectComplexity(a, cw))
	cb := float64(ProjectComplexity(b, cw))
	strength += w.Similarity * (1 - math.Abs(ca-cb)/100)

	if a.Category == b.Category {
		strength += w.SameGroup
	}

	strength = clampUnit(strength)
	return strength
}

func jaccard(a, b []string) (index float64) {
	union := make(map[string]bool, len(a)+len(b))
	for _, v := range a {
		union[strings.ToLower(v)] = true
	}
	for _, v := range b {
		union[strings.ToLower(v)] = true
	}
	if len(union) == 0 {
		return index
	}

	shared := content.SharedCount(a, b)
	index = float64(shared) / float64(len(union))
	return index
}

func lists(values []string, id string) (found bool) {
	for _, v := range values {
		if v == id {
			found = true
			return found
		}
	}
	return found
}

func clampScore(raw float64) (score int) {
	score = int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func clampUnit(raw float64) (value float64) {
	value = math.Max(0, math.Min(1, raw))
	return value
}
