package graph

import (
	"context"
	"math"
	"sort"

	"github.com/nikogura/portfolio/pkg/content"
)

// Layout names.
const (
	LayoutForce        = "force"
	LayoutRadial       = "radial"
	LayoutHierarchical = "hierarchical"
)

// LayoutNames lists the supported layouts.
//
//nolint:gochecknoglobals // Fixed enum
var LayoutNames = []string{LayoutForce, LayoutRadial, LayoutHierarchical}

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Canvas is the drawing area. Layouts keep nodes inside the padded area.
type Canvas struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

// DefaultCanvas is the canvas used when callers do not supply one.
//
//nolint:gochecknoglobals // Layout defaults
var DefaultCanvas = Canvas{Width: 960, Height: 640, Padding: 40}

// Center returns the canvas centre.
func (c Canvas) Center() (p Point) {
	p = Point{X: c.Width / 2, Y: c.Height / 2}
	return p
}

// Inner returns the width and height of the padded area.
func (c Canvas) Inner() (w, h float64) {
	w = math.Max(c.Width-2*c.Padding, 0)
	h = math.Max(c.Height-2*c.Padding, 0)
	return w, h
}

// Clamp moves p inside the padded area.
func (c Canvas) Clamp(p Point) (clamped Point) {
	clamped.X = math.Max(c.Padding, math.Min(c.Width-c.Padding, p.X))
	clamped.Y = math.Max(c.Padding, math.Min(c.Height-c.Padding, p.Y))
	return clamped
}

// Result is a laid-out graph.
type Result struct {
	Layout    string           `json:"layout"`
	Canvas    Canvas           `json:"canvas"`
	Positions map[string]Point `json:"positions"`
	Ticks     int              `json:"ticks,omitempty"`
	Energy    float64          `json:"energy,omitempty"`
}

// Layout positions every node of a graph.
type Layout interface {
	Name() string
	Apply(ctx context.Context, g *Graph, canvas Canvas) (result Result, err error)
}

// LayoutByName returns a layout with default settings.
func LayoutByName(name string) (layout Layout, err error) {
	switch name {
	case LayoutForce, "":
		layout = &ForceLayout{Config: DefaultForceConfig()}
	case LayoutRadial:
		layout = RadialLayout{}
	case LayoutHierarchical:
		layout = HierarchicalLayout{}
	default:
		err = newError(ErrUnknownLayout, "%s", name)
	}
	return layout, err
}

// levelRank orders levels core first. Unknown levels rank after all known ones.
func levelRank(level string) (rank int) {
	for i, l := range content.Levels {
		if l == level {
			rank = i
			return rank
		}
	}
	rank = len(content.Levels)
	return rank
}

// sortedNodeIndices returns node indices ordered by category, level rank, then name.
func sortedNodeIndices(nodes []Node, indices []int) (sorted []int) {
	sorted = append([]int(nil), indices...)
	sort.SliceStable(sorted, func(a, b int) bool {
		na, nb := nodes[sorted[a]], nodes[sorted[b]]
		if na.Category != nb.Category {
			return na.Category < nb.Category
		}
		if levelRank(na.Level) != levelRank(nb.Level) {
			return levelRank(na.Level) < levelRank(nb.Level)
		}
		if na.Name != nb.Name {
			return na.Name < nb.Name
		}
		return na.ID < nb.ID
	})
	return sorted
}
