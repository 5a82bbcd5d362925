package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/visual"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

//nolint:gochecknoglobals // Cobra boilerplate
var graphLayout string

//nolint:gochecknoglobals // Cobra boilerplate
var graphAll bool

//nolint:gochecknoglobals // Cobra boilerplate
var graphOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var graphCmd = &cobra.Command{
	Use:   "graph <kind>",
	Short: "Render a graph to PNG and layout JSON",
	Long: `Lay out one of the portfolio graphs and write <kind>-<layout>.png and
<kind>-<layout>.json to the output directory.

Kinds:   ecosystem, skills, projects
Layouts: force, radial, hierarchical

Example:
  portfolio graph ecosystem
  portfolio graph skills --layout radial
  portfolio graph projects --all --output-dir ./site/img`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringVar(&graphLayout, "layout", graph.LayoutForce, "Layout: "+strings.Join(graph.LayoutNames, ", "))
	graphCmd.Flags().BoolVar(&graphAll, "all", false, "Render every layout concurrently")
	graphCmd.Flags().StringVar(&graphOutputDir, "output-dir", "", "Output directory (default from config)")
}

// graphDocument is the JSON written next to each PNG.
type graphDocument struct {
	Kind     string               `json:"kind"`
	Nodes    []graph.Node         `json:"nodes"`
	Links    []graph.Link         `json:"links"`
	Dangling []graph.Dangling     `json:"dangling"`
	Legend   []visual.LegendEntry `json:"legend"`
	Layout   graph.Result         `json:"layout"`
}

func runGraph(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	kind := args[0]

	layouts := []string{graphLayout}
	if graphAll {
		layouts = graph.LayoutNames
	}
	for _, name := range layouts {
		_, err = graph.LayoutByName(name)
		if err != nil {
			return err
		}
	}

	cfg, data, err := setup(ctx)
	if err != nil {
		return err
	}

	g, err := graph.FromDataset(data, kind)
	if err != nil {
		return err
	}

	for _, d := range g.Dangling() {
		fmt.Printf("Warning: dropped link %s -> %s (%s)\n", d.Source, d.Target, d.Reason)
	}

	outDir := getOutputDir(graphOutputDir, cfg.Defaults.OutputDir)
	err = ensureOutputDir(outDir)
	if err != nil {
		return err
	}

	canvas := graph.Canvas{Width: cfg.Graph.Width, Height: cfg.Graph.Height, Padding: cfg.Graph.Padding}

	written := make([][]string, len(layouts))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range layouts {
		i, name := i, name
		eg.Go(func() (goErr error) {
			written[i], goErr = renderGraph(egCtx, data, g, kind, name, canvas, outDir)
			return goErr
		})
	}

	err = withSpinner(fmt.Sprintf("Laying out %s graph...", kind), eg.Wait)
	if err != nil {
		return err
	}

	for _, paths := range written {
		for _, path := range paths {
			fmt.Printf("✓ %s\n", path)
		}
	}
	return err
}

// renderGraph lays out g with one layout and writes its PNG and JSON.
func renderGraph(ctx context.Context, data content.Dataset, g *graph.Graph, kind, name string, canvas graph.Canvas, outDir string) (paths []string, err error) {
	layout, err := graph.LayoutByName(name)
	if err != nil {
		return paths, err
	}

	if force, ok := layout.(*graph.ForceLayout); ok && getVerbose() {
		force.OnTick = func(f graph.Frame) {
			if f.Tick%100 == 0 {
				fmt.Printf("  %s/%s tick %d energy %.3f\n", kind, name, f.Tick, f.Energy)
			}
		}
	}

	result, err := layout.Apply(ctx, g, canvas)
	if err != nil {
		err = errors.Wrapf(err, "failed to lay out %s with %s", kind, name)
		return paths, err
	}

	scene := visual.NewScene(g, result, visual.Options{
		Title:  graphTitle(data, kind),
		Labels: true,
		Legend: true,
		Glyphs: true,
	})

	var png bytes.Buffer
	err = scene.EncodePNG(&png)
	if err != nil {
		return paths, err
	}

	doc := graphDocument{
		Kind:     kind,
		Nodes:    g.Nodes(),
		Links:    g.Links(),
		Dangling: g.Dangling(),
		Legend:   scene.Legend(),
		Layout:   result,
	}

	var raw []byte
	raw, err = json.MarshalIndent(doc, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal layout")
		return paths, err
	}

	base := fmt.Sprintf("%s-%s", kind, name)
	pngPath, err := writeOutput(outDir, base+".png", png.Bytes())
	if err != nil {
		return paths, err
	}
	jsonPath, err := writeOutput(outDir, base+".json", raw)
	if err != nil {
		return paths, err
	}

	paths = []string{pngPath, jsonPath}
	return paths, err
}

func graphTitle(data content.Dataset, kind string) (title string) {
	switch kind {
	case graph.KindEcosystem:
		title = data.Ecosystem.Name
	case graph.KindSkills:
		title = "Skills"
	case graph.KindProjects:
		title = "Projects"
	}
	return title
}
