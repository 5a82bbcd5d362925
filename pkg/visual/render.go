// Package visual draws laid-out graphs to PNG and answers hit tests against
// the drawn nodes.
package visual

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/nikogura/portfolio/pkg/graph"
	"github.com/nikogura/portfolio/pkg/icons"
	"github.com/pkg/errors"
)

// EmptyMessage is shown when a graph has no nodes.
const EmptyMessage = "Nothing to show yet"

const (
	defaultNodeRadius = 10.0
	minGlyphRadius    = 12.0
	legendSwatch      = 12.0
	legendRow         = 20.0
)

// Options control rendering.
type Options struct {
	Registry   *icons.Registry
	Title      string
	Background string // #rrggbb, white when empty
	Labels     bool
	Legend     bool
	Glyphs     bool // category glyph inside nodes of at least minGlyphRadius
	// OnSelect receives the node detail when Select hits a node.
	OnSelect func(detail graph.Detail)
}

// LegendEntry is one row of the legend.
type LegendEntry struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Color    string `json:"color"`
	Count    int    `json:"count"`
}

// Scene pairs a graph with one of its layouts.
type Scene struct {
	graph  *graph.Graph
	layout graph.Result
	opts   Options
}

// NewScene prepares a scene. A nil registry means icons.Default().
func NewScene(g *graph.Graph, layout graph.Result, opts Options) (scene *Scene) {
	if opts.Registry == nil {
		opts.Registry = icons.Default()
	}
	if layout.Canvas.Width <= 0 || layout.Canvas.Height <= 0 {
		layout.Canvas = graph.DefaultCanvas
	}

	scene = &Scene{graph: g, layout: layout, opts: opts}
	return scene
}

// Legend lists the categories present in the graph with their colours.
func (s *Scene) Legend() (entries []LegendEntry) {
	counts := make(map[string]int)
	for _, n := range s.graph.Nodes() {
		counts[n.Category]++
	}

	entries = make([]LegendEntry, 0, len(counts))
	for _, category := range s.graph.Categories() {
		capability := s.opts.Registry.Resolve(category)
		entries = append(entries, LegendEntry{
			Category: category,
			Label:    capability.Label,
			Color:    capability.Color,
			Count:    counts[category],
		})
	}
	return entries
}

// NodeAt returns the topmost node whose drawn circle contains (x, y).
func (s *Scene) NodeAt(x, y float64) (id string, found bool) {
	nodes := s.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		p, ok := s.layout.Positions[n.ID]
		if !ok {
			continue
		}
		if math.Hypot(x-p.X, y-p.Y) <= radiusOf(n) {
			id = n.ID
			found = true
			return id, found
		}
	}
	return id, found
}

// Select resolves a click at (x, y) and hands the node detail to OnSelect.
func (s *Scene) Select(x, y float64) (detail graph.Detail, found bool, err error) {
	id, found := s.NodeAt(x, y)
	if !found {
		return detail, found, err
	}

	detail, err = s.graph.Detail(id)
	if err != nil {
		return detail, found, err
	}

	if s.opts.OnSelect != nil {
		s.opts.OnSelect(detail)
	}
	return detail, found, err
}

// Render draws the scene. Links are drawn only between nodes that have a
// position; an empty graph draws the placeholder panel.
func (s *Scene) Render() (img image.Image, err error) {
	dc, err := s.draw()
	if err != nil {
		return img, err
	}
	img = dc.Image()
	return img, err
}

// EncodePNG renders the scene and writes it as PNG.
func (s *Scene) EncodePNG(w io.Writer) (err error) {
	dc, err := s.draw()
	if err != nil {
		return err
	}

	err = dc.EncodePNG(w)
	if err != nil {
		err = errors.Wrap(err, "failed to encode png")
	}
	return err
}

func (s *Scene) draw() (dc *gg.Context, err error) {
	canvas := s.layout.Canvas
	dc = gg.NewContext(int(canvas.Width), int(canvas.Height))

	background := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if s.opts.Background != "" {
		background, err = icons.ParseHex(s.opts.Background)
		if err != nil {
			err = errors.Wrap(err, "invalid background")
			return dc, err
		}
	}
	dc.SetColor(background)
	dc.Clear()

	if s.graph.Empty() {
		err = s.drawEmpty(dc)
		return dc, err
	}

	s.drawLinks(dc)

	err = s.drawNodes(dc)
	if err != nil {
		return dc, err
	}

	if s.opts.Legend {
		err = s.drawLegend(dc)
		if err != nil {
			return dc, err
		}
	}

	if s.opts.Title != "" {
		err = s.drawTitle(dc)
	}
	return dc, err
}

func (s *Scene) drawEmpty(dc *gg.Context) (err error) {
	canvas := s.layout.Canvas
	w, h := math.Min(360, canvas.Width-20), math.Min(120, canvas.Height-20)
	x, y := (canvas.Width-w)/2, (canvas.Height-h)/2

	dc.SetHexColor("#f1f5f9")
	dc.DrawRoundedRectangle(x, y, w, h, 12)
	dc.Fill()

	dc.SetHexColor("#cbd5e1")
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, w, h, 12)
	dc.Stroke()

	face, err := Face(16, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor("#64748b")
	dc.DrawStringAnchored(EmptyMessage, canvas.Width/2, canvas.Height/2, 0.5, 0.5)
	return err
}

func (s *Scene) drawLinks(dc *gg.Context) {
	for _, l := range s.graph.Links() {
		a, okA := s.layout.Positions[l.Source]
		b, okB := s.layout.Positions[l.Target]
		if !okA || !okB {
			continue
		}

		dc.SetRGBA(0.39, 0.45, 0.55, 0.25+0.5*l.Strength)
		dc.SetLineWidth(0.5 + 2*l.Strength)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}
}

func (s *Scene) drawNodes(dc *gg.Context) (err error) {
	labelFace, err := Face(11, false)
	if err != nil {
		return err
	}
	glyphFace, err := Face(10, true)
	if err != nil {
		return err
	}

	for _, n := range s.graph.Nodes() {
		p, ok := s.layout.Positions[n.ID]
		if !ok {
			continue
		}

		capability := s.opts.Registry.Resolve(n.Category)
		fill, colorErr := capability.RGBA()
		if colorErr != nil {
			err = errors.Wrapf(colorErr, "node %s", n.ID)
			return err
		}

		r := radiusOf(n)
		dc.SetColor(fill)
		dc.DrawCircle(p.X, p.Y, r)
		dc.Fill()

		if n.Status != "" {
			ring, ringErr := s.opts.Registry.Resolve(n.Status).RGBA()
			if ringErr == nil {
				dc.SetColor(ring)
				dc.SetLineWidth(2)
				dc.DrawCircle(p.X, p.Y, r)
				dc.Stroke()
			}
		}

		if s.opts.Glyphs && r >= minGlyphRadius && capability.Glyph != "" {
			dc.SetFontFace(glyphFace)
			dc.SetHexColor("#ffffff")
			dc.DrawStringAnchored(capability.Glyph, p.X, p.Y, 0.5, 0.5)
		}

		if s.opts.Labels {
			dc.SetFontFace(labelFace)
			dc.SetHexColor("#1e293b")
			dc.DrawStringAnchored(n.Name, p.X, p.Y+r+8, 0.5, 0.5)
		}
	}

	return err
}

func (s *Scene) drawLegend(dc *gg.Context) (err error) {
	entries := s.Legend()
	if len(entries) == 0 {
		return err
	}

	face, err := Face(11, false)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)

	x := s.layout.Canvas.Width - 170
	y := 12.0
	dc.SetRGBA(1, 1, 1, 0.85)
	dc.DrawRoundedRectangle(x-8, y-6, 166, legendRow*float64(len(entries))+8, 6)
	dc.Fill()

	for i, e := range entries {
		row := y + legendRow*float64(i)
		dc.SetHexColor(e.Color)
		dc.DrawRectangle(x, row, legendSwatch, legendSwatch)
		dc.Fill()

		dc.SetHexColor("#334155")
		dc.DrawStringAnchored(e.Label, x+legendSwatch+6, row+legendSwatch/2, 0, 0.5)
	}
	return err
}

func (s *Scene) drawTitle(dc *gg.Context) (err error) {
	face, err := Face(18, true)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetHexColor("#0f172a")
	dc.DrawStringAnchored(s.opts.Title, 16, 20, 0, 0.5)
	return err
}

func radiusOf(n graph.Node) (r float64) {
	r = n.Size
	if r <= 0 {
		r = defaultNodeRadius
	}
	return r
}
