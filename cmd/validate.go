package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/resume"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var validateStrict bool

//nolint:gochecknoglobals // Cobra boilerplate
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the content document",
	Long: `Load and validate the content document, build every graph, and lay out
every résumé.

Links to absent nodes are dropped from the graphs and reported here. With
--strict, any dropped link fails validation.

Example:
  portfolio validate --content ./portfolio.yaml
  portfolio validate --strict`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail when graph links are dropped")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	cfg, data, err := setup(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Content valid: %d projects, %d roles\n", len(data.Projects), len(data.Roles))

	dangling, err := reportGraphs(data)
	if err != nil {
		return err
	}

	opts := resume.DefaultOptions()
	opts.Margin = cfg.Resume.Margin
	err = reportResumes(data, opts)
	if err != nil {
		return err
	}

	if validateStrict && dangling > 0 {
		err = errors.Errorf("%d graph link(s) dropped", dangling)
		return err
	}

	return err
}

// reportGraphs builds every graph kind and prints its dropped links.
func reportGraphs(data content.Dataset) (dangling int, err error) {
	for _, kind := range graph.Kinds {
		var g *graph.Graph
		g, err = graph.FromDataset(data, kind)
		if err != nil {
			err = errors.Wrapf(err, "failed to build %s graph", kind)
			return dangling, err
		}

		fmt.Printf("✓ %s graph: %d nodes, %d links\n", kind, g.Len(), len(g.Links()))
		for _, d := range g.Dangling() {
			fmt.Printf("  dropped %s -> %s: %s\n", d.Source, d.Target, d.Reason)
		}
		dangling += len(g.Dangling())
	}
	return dangling, err
}

// reportResumes lays out every role and prints its page count.
func reportResumes(data content.Dataset, opts resume.Options) (err error) {
	for _, role := range data.Roles {
		var doc resume.Document
		doc, err = resume.Build(data.Personal, role, data.Projects, opts)
		if err != nil {
			err = errors.Wrapf(err, "failed to lay out résumé %s", role.ID)
			return err
		}
		fmt.Printf("✓ résumé %s: %d page(s)\n", role.ID, doc.PageCount())
	}
	return err
}
