package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/metrics"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var projectsCategory string

//nolint:gochecknoglobals // Cobra boilerplate
var projectsTag string

//nolint:gochecknoglobals // Cobra boilerplate
var projectsQuery string

//nolint:gochecknoglobals // Cobra boilerplate
var projectsFeatured bool

//nolint:gochecknoglobals // Cobra boilerplate
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects with complexity and impact scores",
	Long: `List projects with their derived complexity and impact scores.

Filters combine: category first, then tag, then the free-text query, which
matches titles, descriptions, tags and technologies case-insensitively.

Example:
  portfolio projects
  portfolio projects --category "Cloud & Infrastructure"
  portfolio projects --tag rag --query agent`,
	Args: cobra.NoArgs,
	RunE: runProjects,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.Flags().StringVar(&projectsCategory, "category", "", "Only projects in this category")
	projectsCmd.Flags().StringVar(&projectsTag, "tag", "", "Only projects with this tag")
	projectsCmd.Flags().StringVar(&projectsQuery, "query", "", "Free-text search")
	projectsCmd.Flags().BoolVar(&projectsFeatured, "featured", false, "Only featured projects")
}

func runProjects(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, data, err := setup(ctx)
	if err != nil {
		return err
	}

	projects := filterProjects(data.Projects, projectsCategory, projectsTag, projectsQuery, projectsFeatured)
	if len(projects) == 0 {
		fmt.Println("No projects match.")
		return err
	}

	fmt.Printf("%-28s %-44s %10s %6s\n", "ID", "CATEGORY", "COMPLEXITY", "IMPACT")
	for _, p := range projects {
		scores := metrics.Score(p)
		fmt.Printf("%-28s %-44s %10d %6d\n", p.ID, p.Category, scores.Complexity, scores.Impact)
		if getVerbose() {
			fmt.Printf("    %s (%s)\n", p.Title, p.Timeline)
			fmt.Printf("    tags: %s\n", strings.Join(p.Tags, ", "))
		}
	}
	fmt.Printf("\n%d of %d projects\n", len(projects), len(data.Projects))

	return err
}

func filterProjects(projects []content.Project, category, tag, query string, featured bool) (filtered []content.Project) {
	filtered = projects
	if category != "" {
		filtered = content.FilterByCategory(filtered, category)
	}
	if tag != "" {
		filtered = content.FilterByTag(filtered, tag)
	}
	if query != "" {
		filtered = content.Search(filtered, query)
	}
	if featured {
		filtered = content.Featured(filtered)
	}
	return filtered
}
