package graph

import (
	"context"
	"math"

	"github.com/nikogura/portfolio/pkg/content"
)

// RadialLayout puts each node on a ring chosen by its level, core innermost,
// at an angle inside its category's slice. Slices are proportional to the
// number of nodes in the category and ordered by category name.
type RadialLayout struct{}

// Name returns the layout name.
func (RadialLayout) Name() (name string) {
	name = LayoutRadial
	return name
}

// Apply computes radial positions.
func (RadialLayout) Apply(ctx context.Context, g *Graph, canvas Canvas) (result Result, err error) {
	result = Result{Layout: LayoutRadial, Canvas: canvas, Positions: make(map[string]Point, g.Len())}
	if g.Empty() {
		return result, err
	}

	err = ctx.Err()
	if err != nil {
		return result, err
	}

	center := canvas.Center()
	w, h := canvas.Inner()
	maxRadius := math.Min(w, h) / 2
	rings := float64(len(content.Levels))

	byCategory := make(map[string][]int)
	for i, n := range g.nodes {
		byCategory[n.Category] = append(byCategory[n.Category], i)
	}

	total := float64(g.Len())
	start := -math.Pi / 2
	for _, category := range g.Categories() {
		members := sortedNodeIndices(g.nodes, byCategory[category])
		span := 2 * math.Pi * float64(len(members)) / total

		for k, idx := range members {
			n := g.nodes[idx]
			rank := math.Min(float64(levelRank(n.Level)), rings-1)
			radius := maxRadius * (rank + 1) / rings
			angle := start + span*(float64(k)+0.5)/float64(len(members))

			result.Positions[n.ID] = Point{
				X: center.X + radius*math.Cos(angle),
				Y: center.Y + radius*math.Sin(angle),
			}
		}

		start += span
	}

	return result, err
}
