package graph

import (
	"context"
	"math"
	"testing"

	"github.com/nikogura/portfolio/pkg/content"
	"github.com/pkg/errors"
)

func defaultEcosystem(t *testing.T) (g *Graph) {
	t.Helper()

	data, err := content.LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load content: %v", err)
	}

	g, err = FromEcosystem(data.Ecosystem)
	if err != nil {
		t.Fatalf("Failed to build ecosystem graph: %v", err)
	}

	return g
}

func assertInside(t *testing.T, canvas Canvas, positions map[string]Point) {
	t.Helper()

	const eps = 1e-9
	for id, p := range positions {
		if p.X < canvas.Padding-eps || p.X > canvas.Width-canvas.Padding+eps ||
			p.Y < canvas.Padding-eps || p.Y > canvas.Height-canvas.Padding+eps {
			t.Errorf("Node %s at (%.2f, %.2f) is outside the padded canvas", id, p.X, p.Y)
		}
	}
}

func TestEmptyGraphLayouts(t *testing.T) {
	g, err := New(nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, name := range LayoutNames {
		t.Run(name, func(t *testing.T) {
			calls := 0
			var layout Layout
			if name == LayoutForce {
				layout = &ForceLayout{Config: DefaultForceConfig(), OnTick: func(Frame) { calls++ }}
			} else {
				layout, err = LayoutByName(name)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
			}

			result, err := layout.Apply(context.Background(), g, DefaultCanvas)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(result.Positions) != 0 {
				t.Errorf("Expected no positions, got %d", len(result.Positions))
			}
			if calls != 0 {
				t.Errorf("Expected no tick callbacks, got %d", calls)
			}
		})
	}
}

func TestForceStaysInBounds(t *testing.T) {
	g := defaultEcosystem(t)
	cfg := DefaultForceConfig()

	ticks := 0
	sim := NewSimulation(g, DefaultCanvas, cfg)
	result, err := sim.Run(context.Background(), func(f Frame) {
		ticks++
		if f.Tick != ticks {
			t.Errorf("Expected frame tick %d, got %d", ticks, f.Tick)
		}
		assertInside(t, DefaultCanvas, f.Positions)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if ticks == 0 {
		t.Error("Expected at least one tick")
	}
	if result.Ticks != ticks {
		t.Errorf("Expected result ticks %d, got %d", ticks, result.Ticks)
	}
	if result.Ticks > cfg.MaxTicks {
		t.Errorf("Expected at most %d ticks, got %d", cfg.MaxTicks, result.Ticks)
	}
	if !sim.Done() {
		t.Error("Expected simulation to be done after Run")
	}
	if len(result.Positions) != g.Len() {
		t.Errorf("Expected %d positions, got %d", g.Len(), len(result.Positions))
	}
}

func TestForceDeterministic(t *testing.T) {
	g := defaultEcosystem(t)
	layout := &ForceLayout{Config: DefaultForceConfig()}

	first, err := layout.Apply(context.Background(), g, DefaultCanvas)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := layout.Apply(context.Background(), g, DefaultCanvas)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for id, p := range first.Positions {
		if second.Positions[id] != p {
			t.Errorf("Node %s moved between runs: %v vs %v", id, p, second.Positions[id])
		}
	}
}

func TestForcePinHoldsPosition(t *testing.T) {
	g := defaultEcosystem(t)
	sim := NewSimulation(g, DefaultCanvas, DefaultForceConfig())

	err := sim.Pin("kubernetes", 100, 120)
	if err != nil {
		t.Fatalf("Failed to pin: %v", err)
	}
	if !sim.Pinned("kubernetes") {
		t.Fatal("Expected kubernetes to be pinned")
	}

	result, err := sim.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if got := result.Positions["kubernetes"]; got != (Point{X: 100, Y: 120}) {
		t.Errorf("Expected pinned node at (100, 120), got %v", got)
	}

	err = sim.Release("kubernetes")
	if err != nil {
		t.Fatalf("Failed to release: %v", err)
	}
	if sim.Pinned("kubernetes") {
		t.Error("Expected kubernetes to be released")
	}
	if sim.Done() {
		t.Error("Expected release to reheat the simulation")
	}

	err = sim.Pin("ghost", 0, 0)
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode, got %v", err)
	}
}

func TestForcePinClampsToCanvas(t *testing.T) {
	g := defaultEcosystem(t)
	sim := NewSimulation(g, DefaultCanvas, DefaultForceConfig())

	err := sim.Pin("go", -500, 5000)
	if err != nil {
		t.Fatalf("Failed to pin: %v", err)
	}

	got := sim.Positions()["go"]
	want := Point{X: DefaultCanvas.Padding, Y: DefaultCanvas.Height - DefaultCanvas.Padding}
	if got != want {
		t.Errorf("Expected pin clamped to %v, got %v", want, got)
	}
}

func TestForceCancel(t *testing.T) {
	g := defaultEcosystem(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := NewSimulation(g, DefaultCanvas, DefaultForceConfig())
	result, err := sim.Run(ctx, func(f Frame) {
		if f.Tick == 5 {
			cancel()
		}
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if result.Ticks != 5 {
		t.Errorf("Expected 5 ticks before cancellation, got %d", result.Ticks)
	}
	if len(result.Positions) != g.Len() {
		t.Errorf("Expected partial positions for every node, got %d", len(result.Positions))
	}
}

func TestRadialRings(t *testing.T) {
	nodes := []Node{
		{ID: "core", Name: "Core", Category: "A", Level: content.LevelCore},
		{ID: "primary", Name: "Primary", Category: "A", Level: content.LevelPrimary},
		{ID: "secondary", Name: "Secondary", Category: "B", Level: content.LevelSecondary},
		{ID: "aux", Name: "Aux", Category: "B", Level: content.LevelAuxiliary},
		{ID: "odd", Name: "Odd", Category: "C", Level: "unknown"},
	}
	g, err := New(nodes, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := RadialLayout{}.Apply(context.Background(), g, DefaultCanvas)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	center := DefaultCanvas.Center()
	radius := func(id string) (r float64) {
		p := result.Positions[id]
		r = math.Hypot(p.X-center.X, p.Y-center.Y)
		return r
	}

	order := []string{"core", "primary", "secondary", "aux"}
	for i := 1; i < len(order); i++ {
		if radius(order[i-1]) >= radius(order[i]) {
			t.Errorf("Expected %s inside %s: %.2f >= %.2f", order[i-1], order[i], radius(order[i-1]), radius(order[i]))
		}
	}

	if math.Abs(radius("odd")-radius("aux")) > 1e-9 {
		t.Errorf("Expected unknown level on the outer ring, got radius %.2f", radius("odd"))
	}

	assertInside(t, DefaultCanvas, result.Positions)
}

func TestHierarchicalBands(t *testing.T) {
	nodes := []Node{
		{ID: "b", Name: "Beta", Category: "X", Level: content.LevelCore},
		{ID: "a", Name: "Alpha", Category: "X", Level: content.LevelCore},
		{ID: "c", Name: "Gamma", Category: "X", Level: content.LevelAuxiliary},
	}
	g, err := New(nodes, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result, err := HierarchicalLayout{}.Apply(context.Background(), g, DefaultCanvas)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	a, b, c := result.Positions["a"], result.Positions["b"], result.Positions["c"]
	if a.Y != b.Y {
		t.Errorf("Expected same band for core nodes, got %.2f and %.2f", a.Y, b.Y)
	}
	if a.Y >= c.Y {
		t.Errorf("Expected core band above auxiliary band: %.2f >= %.2f", a.Y, c.Y)
	}
	if a.X >= b.X {
		t.Errorf("Expected Alpha left of Beta: %.2f >= %.2f", a.X, b.X)
	}
	if c.X != DefaultCanvas.Width/2 {
		t.Errorf("Expected lone auxiliary node centred, got %.2f", c.X)
	}

	// Two bands present, so each takes half the inner height.
	_, h := DefaultCanvas.Inner()
	if want := DefaultCanvas.Padding + h/4; a.Y != want {
		t.Errorf("Expected core band at %.2f, got %.2f", want, a.Y)
	}

	assertInside(t, DefaultCanvas, result.Positions)
}
