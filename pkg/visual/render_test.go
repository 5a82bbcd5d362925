package visual

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/icons"
)

func radialScene(t *testing.T, opts Options) (scene *Scene, g *graph.Graph, result graph.Result) {
	t.Helper()

	data, err := content.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	g, err = graph.FromEcosystem(data.Ecosystem)
	if err != nil {
		t.Fatalf("Failed to build graph: %v", err)
	}

	result, err = graph.RadialLayout{}.Apply(context.Background(), g, graph.DefaultCanvas)
	if err != nil {
		t.Fatalf("Failed to lay out graph: %v", err)
	}

	scene = NewScene(g, result, opts)
	return scene, g, result
}

func TestEncodePNG(t *testing.T) {
	scene, _, _ := radialScene(t, Options{Title: "Technology Ecosystem", Labels: true, Legend: true})

	var buf bytes.Buffer
	err := scene.EncodePNG(&buf)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Failed to decode rendered png: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != int(graph.DefaultCanvas.Width) || bounds.Dy() != int(graph.DefaultCanvas.Height) {
		t.Errorf("Expected %vx%v image, got %dx%d", graph.DefaultCanvas.Width, graph.DefaultCanvas.Height, bounds.Dx(), bounds.Dy())
	}
}

func TestRenderDrawsNodesInCategoryColour(t *testing.T) {
	scene, g, result := radialScene(t, Options{})

	img, err := scene.Render()
	if err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	registry := icons.Default()
	node, _ := g.Node("kubernetes")
	want, err := registry.Resolve(node.Category).RGBA()
	if err != nil {
		t.Fatalf("Failed to resolve colour: %v", err)
	}

	p := result.Positions["kubernetes"]
	r, gr, b, _ := img.At(int(p.X), int(p.Y)).RGBA()
	if uint8(r>>8) != want.R || uint8(gr>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("Expected node centre in %v, got (%d, %d, %d)", want, r>>8, gr>>8, b>>8)
	}
}

func TestRenderEmptyGraph(t *testing.T) {
	g, err := graph.New(nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	scene := NewScene(g, graph.Result{}, Options{})
	img, err := scene.Render()
	if err != nil {
		t.Fatalf("Expected placeholder, got error: %v", err)
	}

	// Inside the panel, clear of the message text.
	c := graph.DefaultCanvas.Center()
	r, gr, b, _ := img.At(int(c.X)-150, int(c.Y)-45).RGBA()
	if uint8(r>>8) != 0xf1 || uint8(gr>>8) != 0xf5 || uint8(b>>8) != 0xf9 {
		t.Errorf("Expected placeholder panel fill, got (%d, %d, %d)", r>>8, gr>>8, b>>8)
	}

	if len(scene.Legend()) != 0 {
		t.Error("Expected empty legend")
	}
}

func TestRenderSkipsUnplacedNodes(t *testing.T) {
	nodes := []graph.Node{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	links := []graph.Link{{Source: "a", Target: "b"}}
	g, err := graph.New(nodes, links)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result := graph.Result{
		Canvas:    graph.DefaultCanvas,
		Positions: map[string]graph.Point{"a": {X: 100, Y: 100}},
	}

	_, err = NewScene(g, result, Options{Labels: true}).Render()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestRenderBadBackground(t *testing.T) {
	scene, _, _ := radialScene(t, Options{Background: "teal"})

	_, err := scene.Render()
	if err == nil {
		t.Error("Expected error for malformed background")
	}
}

func TestSelect(t *testing.T) {
	var selected []graph.Detail
	scene, g, result := radialScene(t, Options{OnSelect: func(d graph.Detail) { selected = append(selected, d) }})

	p := result.Positions["kubernetes"]
	detail, found, err := scene.Select(p.X, p.Y)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !found {
		t.Fatal("Expected a node under the cursor")
	}
	if detail.Node.ID != "kubernetes" {
		t.Errorf("Expected kubernetes, got %s", detail.Node.ID)
	}
	if detail.Degree != g.Degree("kubernetes") {
		t.Errorf("Expected degree %d, got %d", g.Degree("kubernetes"), detail.Degree)
	}
	if len(selected) != 1 {
		t.Errorf("Expected OnSelect to fire once, got %d", len(selected))
	}

	_, found, err = scene.Select(1, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected no node at the canvas corner")
	}
	if len(selected) != 1 {
		t.Errorf("Expected OnSelect not to fire on a miss, got %d calls", len(selected))
	}
}

func TestLegend(t *testing.T) {
	scene, g, _ := radialScene(t, Options{})

	entries := scene.Legend()
	categories := g.Categories()
	if len(entries) != len(categories) {
		t.Fatalf("Expected %d legend entries, got %d", len(categories), len(entries))
	}

	total := 0
	for i, e := range entries {
		if e.Category != categories[i] {
			t.Errorf("Entry %d: expected %s, got %s", i, categories[i], e.Category)
		}
		total += e.Count
	}
	if total != g.Len() {
		t.Errorf("Expected legend counts to sum to %d, got %d", g.Len(), total)
	}
}

func TestRenderGlyphs(t *testing.T) {
	registry, err := icons.NewRegistry(
		icons.Capability{Key: "other", Label: "Other", Color: "#112233"},
		icons.Capability{Key: "tools", Label: "Tools", Glyph: "WW", Color: "#1e3a8a"},
	)
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	g, err := graph.New([]graph.Node{{ID: "a", Name: "Alpha", Category: "Tools", Size: 24}}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result := graph.Result{
		Canvas:    graph.DefaultCanvas,
		Positions: map[string]graph.Point{"a": {X: 100, Y: 100}},
	}

	tests := []struct {
		name   string
		glyphs bool
		want   bool
	}{
		{name: "glyph drawn", glyphs: true, want: true},
		{name: "glyph off", glyphs: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewScene(g, result, Options{Registry: registry, Glyphs: tt.glyphs}).Render()
			if err != nil {
				t.Fatalf("Failed to render: %v", err)
			}

			light := false
			for x := 92; x <= 108; x++ {
				for y := 94; y <= 106; y++ {
					r, gr, b, _ := img.At(x, y).RGBA()
					if r>>8 > 0xc0 && gr>>8 > 0xc0 && b>>8 > 0xc0 {
						light = true
					}
				}
			}

			if light != tt.want {
				t.Errorf("Expected glyph pixels %v, got %v", tt.want, light)
			}
		})
	}
}
