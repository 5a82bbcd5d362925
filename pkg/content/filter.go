package content

import (
	"sort"
	"strings"
)

// FilterByCategory returns the projects whose category equals category exactly.
func FilterByCategory(projects []Project, category string) (filtered []Project) {
	filtered = make([]Project, 0)
	for _, p := range projects {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterByTag returns the projects carrying tag, compared case-insensitively.
func FilterByTag(projects []Project, tag string) (filtered []Project) {
	filtered = make([]Project, 0)
	for _, p := range projects {
		if containsFold(p.Tags, tag) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Search returns projects matching query in title, description, tags or technologies.
// An empty query matches everything.
func Search(projects []Project, query string) (filtered []Project) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		filtered = append(make([]Project, 0, len(projects)), projects...)
		return filtered
	}

	filtered = make([]Project, 0)
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			containsSubstringFold(p.Tags, q) ||
			containsSubstringFold(p.Technologies, q) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Featured returns the featured projects.
func Featured(projects []Project) (filtered []Project) {
	filtered = make([]Project, 0)
	for _, p := range projects {
		if p.Featured {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// ProjectByID returns the project with the given id.
func ProjectByID(projects []Project, id string) (project Project, found bool) {
	for _, p := range projects {
		if p.ID == id {
			project = p
			found = true
			return project, found
		}
	}
	return project, found
}

// Related returns up to limit projects sharing tags or technologies with p,
// most shared first. Ties keep dataset order. A limit of zero or less means
// no limit.
func Related(p Project, all []Project, limit int) (related []Project) {
	type scored struct {
		project Project
		shared  int
	}

	candidates := make([]scored, 0)
	for _, other := range all {
		if other.ID == p.ID {
			continue
		}
		shared := SharedCount(p.Tags, other.Tags) + SharedCount(p.Technologies, other.Technologies)
		if shared == 0 {
			continue
		}
		candidates = append(candidates, scored{project: other, shared: shared})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].shared > candidates[j].shared
	})

	related = make([]Project, 0)
	for _, c := range candidates {
		if limit > 0 && len(related) >= limit {
			break
		}
		related = append(related, c.project)
	}
	return related
}

// SharedCount counts the distinct values present in both lists, case-insensitively.
func SharedCount(a, b []string) (count int) {
	seen := make(map[string]bool, len(a))
	for _, v := range a {
		seen[strings.ToLower(v)] = true
	}
	for _, v := range b {
		key := strings.ToLower(v)
		if seen[key] {
			count++
			delete(seen, key)
		}
	}
	return count
}

func containsFold(values []string, target string) (found bool) {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			found = true
			return found
		}
	}
	return found
}

func containsSubstringFold(values []string, lowerQuery string) (found bool) {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), lowerQuery) {
			found = true
			return found
		}
	}
	return found
}
