package graph

import (
	"strconv"
	"strings"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/metrics"
)

// Graph kinds served by the site.
const (
	KindEcosystem = "ecosystem"
	KindSkills    = "skills"
	KindProjects  = "projects"
)

// Kinds lists the graph kinds.
//
//nolint:gochecknoglobals // Fixed enum
var Kinds = []string{KindEcosystem, KindSkills, KindProjects}

// minSkillOverlap is the weakest skill relationship still drawn.
const minSkillOverlap = 0.55

// minProjectAffinity is the weakest project relationship still drawn.
const minProjectAffinity = 0.45

// FromDataset builds the graph of the given kind.
func FromDataset(data content.Dataset, kind string) (g *Graph, err error) {
	switch kind {
	case KindEcosystem:
		g, err = FromEcosystem(data.Ecosystem)
	case KindSkills:
		g, err = FromSkills(data.SkillCategories)
	case KindProjects:
		g, err = FromProjects(data.Projects)
	default:
		err = newError(ErrUnknownKind, "%s", kind)
	}
	return g, err
}

// FromEcosystem builds the technology map. Each connection becomes a link
// weighted by metrics.RelationshipStrength; connections to absent nodes end up
// in Dangling.
func FromEcosystem(eco content.TechEcosystem) (g *Graph, err error) {
	nodes := make([]Node, 0, len(eco.Nodes))
	byID := make(map[string]content.TechNode, len(eco.Nodes))
	for _, tn := range eco.Nodes {
		byID[tn.ID] = tn
		nodes = append(nodes, Node{
			ID:       tn.ID,
			Name:     tn.Name,
			Category: tn.Category,
			Level:    tn.Level,
			Value:    tn.Proficiency,
			Size:     sizeFor(tn.Proficiency),
			Status:   tn.Status,
			Meta: map[string]string{
				"proficiency": strconv.Itoa(tn.Proficiency),
				"status":      tn.Status,
			},
		})
	}

	links := make([]Link, 0)
	for _, tn := range eco.Nodes {
		for _, target := range tn.Connections {
			strength := 0.0
			if other, ok := byID[target]; ok {
				strength = metrics.RelationshipStrength(tn, other, metrics.DefaultRelationshipWeights)
			}
			links = append(links, Link{Source: tn.ID, Target: target, Strength: strength})
		}
	}

	g, err = New(nodes, links)
	return g, err
}

// FromSkills builds the skill relationship graph. Skills sharing tools are
// linked when their metrics.SkillOverlap reaches minSkillOverlap. A skill
// listed under several categories is one node in the first of them, carrying
// the tools of every listing.
func FromSkills(categories []content.SkillCategory) (g *Graph, err error) {
	type entry struct {
		skill    content.Skill
		category string
	}

	entries := make([]entry, 0)
	nodes := make([]Node, 0)
	index := make(map[string]int)
	for _, sc := range categories {
		for _, s := range sc.Skills {
			id := SkillID(s.Name)
			if i, seen := index[id]; seen {
				entries[i].skill.Tools = mergeFold(entries[i].skill.Tools, s.Tools)
				nodes[i].Meta["tools"] = strings.Join(entries[i].skill.Tools, ", ")
				continue
			}
			index[id] = len(nodes)

			s.Tools = mergeFold(nil, s.Tools)
			entries = append(entries, entry{skill: s, category: sc.Name})
			nodes = append(nodes, Node{
				ID:       id,
				Name:     s.Name,
				Category: sc.Name,
				Level:    levelForScore(s.Level),
				Value:    s.Level,
				Size:     sizeFor(s.Level),
				Meta: map[string]string{
					"experience": s.Experience,
					"tools":      strings.Join(s.Tools, ", "),
				},
			})
		}
	}

	links := make([]Link, 0)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if content.SharedCount(a.skill.Tools, b.skill.Tools) == 0 {
				continue
			}
			strength := metrics.SkillOverlap(a.skill, b.skill, a.category == b.category, metrics.DefaultOverlapWeights)
			if strength < minSkillOverlap {
				continue
			}
			links = append(links, Link{Source: nodes[i].ID, Target: nodes[j].ID, Strength: strength})
		}
	}

	g, err = New(nodes, links)
	return g, err
}

// FromProjects builds the collaboration network between projects. Projects
// sharing tags or technologies are linked by metrics.ProjectAffinity.
func FromProjects(projects []content.Project) (g *Graph, err error) {
	nodes := make([]Node, 0, len(projects))
	for _, p := range projects {
		scores := metrics.Score(p)
		nodes = append(nodes, Node{
			ID:       p.ID,
			Name:     p.Title,
			Category: p.Category,
			Level:    levelForScore(scores.Complexity),
			Value:    scores.Impact,
			Size:     sizeFor(scores.Impact),
			Meta: map[string]string{
				"timeline":   p.Timeline,
				"complexity": strconv.Itoa(scores.Complexity),
				"impact":     strconv.Itoa(scores.Impact),
			},
		})
	}

	links := make([]Link, 0)
	for i := 0; i < len(projects); i++ {
		for j := i + 1; j < len(projects); j++ {
			a, b := projects[i], projects[j]
			if content.SharedCount(a.Tags, b.Tags)+content.SharedCount(a.Technologies, b.Technologies) == 0 {
				continue
			}
			strength := metrics.ProjectAffinity(a, b, metrics.DefaultComplexityWeights, metrics.DefaultOverlapWeights)
			if strength < minProjectAffinity {
				continue
			}
			links = append(links, Link{Source: a.ID, Target: b.ID, Strength: strength})
		}
	}

	g, err = New(nodes, links)
	return g, err
}

// mergeFold appends the values of extra missing from base, compared
// case-insensitively.
func mergeFold(base, extra []string) (merged []string) {
	merged = append(make([]string, 0, len(base)+len(extra)), base...)
	seen := make(map[string]bool, len(merged))
	for _, v := range merged {
		seen[strings.ToLower(v)] = true
	}
	for _, v := range extra {
		key := strings.ToLower(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, v)
	}
	return merged
}

// SkillID derives a stable node id from a skill name.
func SkillID(name string) (id string) {
	id = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return id
}

// levelForScore buckets a 0-100 score into a node level.
func levelForScore(score int) (level string) {
	switch {
	case score >= 90:
		level = content.LevelCore
	case score >= 80:
		level = content.LevelPrimary
	case score >= 65:
		level = content.LevelSecondary
	default:
		level = content.LevelAuxiliary
	}
	return level
}

// sizeFor maps a 0-100 value to a drawn radius.
func sizeFor(value int) (radius float64) {
	radius = 8 + 16*float64(value)/100
	return radius
}
