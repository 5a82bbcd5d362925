package content

import (
	"testing"
)

const aiCategory = "Artificial Intelligence & Machine Learning"

func TestFilterByCategoryAIML(t *testing.T) {
	data, err := LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load embedded content: %v", err)
	}

	filtered := FilterByCategory(data.Projects, aiCategory)

	want := map[string]bool{"Generative AI Suite": false, "AI Agents Platform": false}
	if len(filtered) != len(want) {
		t.Fatalf("Expected %d AI/ML projects, got %d", len(want), len(filtered))
	}

	for _, p := range filtered {
		if p.Category != aiCategory {
			t.Errorf("Project %s has category %s", p.ID, p.Category)
		}
		if _, ok := want[p.Title]; !ok {
			t.Errorf("Unexpected project %s in AI/ML filter", p.Title)
		}
		want[p.Title] = true
	}

	for title, found := range want {
		if !found {
			t.Errorf("Expected to find %s", title)
		}
	}
}

func TestFilterByCategoryEveryCategory(t *testing.T) {
	data, err := LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load embedded content: %v", err)
	}

	total := 0
	for _, category := range data.ProjectCategories {
		filtered := FilterByCategory(data.Projects, category)
		for _, p := range filtered {
			if p.Category != category {
				t.Errorf("Category %s returned project %s with category %s", category, p.ID, p.Category)
			}
		}
		total += len(filtered)
	}

	if total != len(data.Projects) {
		t.Errorf("Expected categories to partition %d projects, got %d", len(data.Projects), total)
	}
}

func TestFilterByCategoryUnknown(t *testing.T) {
	projects := []Project{{ID: "a", Category: "Tools"}}

	filtered := FilterByCategory(projects, "tools")
	if len(filtered) != 0 {
		t.Errorf("Expected exact category match, got %d projects", len(filtered))
	}
}

func TestFilterByTag(t *testing.T) {
	projects := []Project{
		{ID: "a", Tags: []string{"LLM", "rag"}},
		{ID: "b", Tags: []string{"web"}},
	}

	filtered := FilterByTag(projects, "llm")
	if len(filtered) != 1 || filtered[0].ID != "a" {
		t.Errorf("Expected project a, got %+v", filtered)
	}
}

func TestSearch(t *testing.T) {
	projects := []Project{
		{ID: "a", Title: "Streaming Pipeline", Technologies: []string{"Kafka"}},
		{ID: "b", Title: "Site", Description: "Built with Go and gin"},
		{ID: "c", Title: "Other", Tags: []string{"kafka-connect"}},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query", query: "", want: []string{"a", "b", "c"}},
		{name: "technology", query: "kafka", want: []string{"a", "c"}},
		{name: "description", query: "GIN", want: []string{"b"}},
		{name: "no match", query: "cobol", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(projects, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d results, got %d", len(tt.want), len(got))
			}
			for i, p := range got {
				if p.ID != tt.want[i] {
					t.Errorf("Result %d: expected %s, got %s", i, tt.want[i], p.ID)
				}
			}
		})
	}
}

func TestFeaturedAndByID(t *testing.T) {
	projects := []Project{
		{ID: "a", Featured: true},
		{ID: "b"},
	}

	featured := Featured(projects)
	if len(featured) != 1 || featured[0].ID != "a" {
		t.Errorf("Expected only a to be featured, got %+v", featured)
	}

	p, found := ProjectByID(projects, "b")
	if !found || p.ID != "b" {
		t.Error("Expected to find project b")
	}

	_, found = ProjectByID(projects, "z")
	if found {
		t.Error("Expected z not to be found")
	}
}

func TestRelated(t *testing.T) {
	base := Project{ID: "base", Tags: []string{"llm", "rag"}, Technologies: []string{"Go", "Python"}}
	all := []Project{
		base,
		{ID: "one", Tags: []string{"llm"}},
		{ID: "three", Tags: []string{"LLM", "rag"}, Technologies: []string{"go"}},
		{ID: "none", Tags: []string{"web"}},
	}

	related := Related(base, all, 5)
	if len(related) != 2 {
		t.Fatalf("Expected 2 related projects, got %d", len(related))
	}
	if related[0].ID != "three" || related[1].ID != "one" {
		t.Errorf("Expected [three one], got [%s %s]", related[0].ID, related[1].ID)
	}

	limited := Related(base, all, 1)
	if len(limited) != 1 {
		t.Errorf("Expected limit of 1, got %d", len(limited))
	}

	for _, limit := range []int{0, -1} {
		unlimited := Related(base, all, limit)
		if len(unlimited) != 2 {
			t.Errorf("Expected limit %d to return all 2 related projects, got %d", limit, len(unlimited))
		}
	}
}

func TestSharedCount(t *testing.T) {
	if got := SharedCount([]string{"Go", "go", "Rust"}, []string{"GO", "rust", "go"}); got != 2 {
		t.Errorf("Expected 2 shared values, got %d", got)
	}
}
