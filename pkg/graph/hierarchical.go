package graph

import (
	"context"
	"sort"
)

// HierarchicalLayout puts each level on its own horizontal band, core at the
// top, and spaces the band's nodes evenly across the width.
type HierarchicalLayout struct{}

// Name returns the layout name.
func (HierarchicalLayout) Name() (name string) {
	name = LayoutHierarchical
	return name
}

// Apply computes banded positions. Only levels that have nodes get a band.
func (HierarchicalLayout) Apply(ctx context.Context, g *Graph, canvas Canvas) (result Result, err error) {
	result = Result{Layout: LayoutHierarchical, Canvas: canvas, Positions: make(map[string]Point, g.Len())}
	if g.Empty() {
		return result, err
	}

	err = ctx.Err()
	if err != nil {
		return result, err
	}

	bands := make(map[string][]int)
	levels := make([]string, 0)
	for i, n := range g.nodes {
		if _, seen := bands[n.Level]; !seen {
			levels = append(levels, n.Level)
		}
		bands[n.Level] = append(bands[n.Level], i)
	}

	sort.SliceStable(levels, func(a, b int) bool {
		ra, rb := levelRank(levels[a]), levelRank(levels[b])
		if ra != rb {
			return ra < rb
		}
		return levels[a] < levels[b]
	})

	w, h := canvas.Inner()
	bandHeight := h / float64(len(levels))

	for bi, level := range levels {
		members := sortedNodeIndices(g.nodes, bands[level])
		y := canvas.Padding + bandHeight*(float64(bi)+0.5)
		slot := w / float64(len(members))

		for k, idx := range members {
			result.Positions[g.nodes[idx].ID] = Point{
				X: canvas.Padding + slot*(float64(k)+0.5),
				Y: y,
			}
		}
	}

	return result, err
}
