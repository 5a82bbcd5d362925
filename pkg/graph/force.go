package graph

import (
	"context"
	"math"

	"github.com/pkg/errors"
)

// ForceConfig tunes the force-directed simulation.
type ForceConfig struct {
	Charge          float64 `json:"charge"`           // repulsion constant, force = Charge / d^2
	LinkDistance    float64 `json:"link_distance"`    // target distance at strength 1; weaker links sit further apart
	Spring          float64 `json:"spring"`           // link stiffness
	Gravity         float64 `json:"gravity"`          // pull toward the canvas centre
	Damping         float64 `json:"damping"`          // fraction of velocity lost per tick
	MaxSpeed        float64 `json:"max_speed"`        // per-tick displacement cap
	MaxTicks        int     `json:"max_ticks"`        // tick budget
	EnergyThreshold float64 `json:"energy_threshold"` // stop once kinetic energy falls below this
}

// DefaultForceConfig returns the settings used by the site.
func DefaultForceConfig() (cfg ForceConfig) {
	cfg = ForceConfig{
		Charge:          1800,
		LinkDistance:    70,
		Spring:          0.04,
		Gravity:         0.015,
		Damping:         0.4,
		MaxSpeed:        25,
		MaxTicks:        300,
		EnergyThreshold: 0.05,
	}
	return cfg
}

// Frame is the state published after each tick.
type Frame struct {
	Tick      int              `json:"tick"`
	Energy    float64          `json:"energy"`
	Positions map[string]Point `json:"positions"`
}

// Simulation is a stepwise force-directed layout. It is not safe for
// concurrent use; drive it from one goroutine.
type Simulation struct {
	g      *Graph
	cfg    ForceConfig
	canvas Canvas

	pos    []Point
	vel    []Point
	pinned []bool

	ticks   int // total ticks run
	budget  int // ticks since the last reheat
	energy  float64
	settled bool
}

// NewSimulation seeds every node on a phyllotaxis spiral around the centre,
// so identical input always produces identical output.
func NewSimulation(g *Graph, canvas Canvas, cfg ForceConfig) (s *Simulation) {
	n := g.Len()
	s = &Simulation{
		g:      g,
		cfg:    cfg,
		canvas: canvas,
		pos:    make([]Point, n),
		vel:    make([]Point, n),
		pinned: make([]bool, n),
		energy: math.Inf(1),
	}

	center := canvas.Center()
	golden := math.Pi * (3 - math.Sqrt(5))
	for i := range s.pos {
		r := 10 * math.Sqrt(float64(i)+0.5)
		theta := float64(i) * golden
		s.pos[i] = canvas.Clamp(Point{X: center.X + r*math.Cos(theta), Y: center.Y + r*math.Sin(theta)})
	}

	return s
}

// Pin fixes a node at (x, y) until Release. Pinning reheats a settled simulation.
func (s *Simulation) Pin(id string, x, y float64) (err error) {
	i, found := s.g.index[id]
	if !found {
		err = newError(ErrUnknownNode, "%s", id)
		return err
	}

	s.pinned[i] = true
	s.pos[i] = s.canvas.Clamp(Point{X: x, Y: y})
	s.vel[i] = Point{}
	s.Reheat()
	return err
}

// Release returns a pinned node to simulation control.
func (s *Simulation) Release(id string) (err error) {
	i, found := s.g.index[id]
	if !found {
		err = newError(ErrUnknownNode, "%s", id)
		return err
	}

	s.pinned[i] = false
	s.Reheat()
	return err
}

// Pinned reports whether id is pinned.
func (s *Simulation) Pinned(id string) (pinned bool) {
	i, found := s.g.index[id]
	if !found {
		return pinned
	}
	pinned = s.pinned[i]
	return pinned
}

// Reheat restarts the tick budget so a settled simulation runs again.
func (s *Simulation) Reheat() {
	s.budget = 0
	s.settled = false
	s.energy = math.Inf(1)
}

// Done reports whether the simulation has settled or exhausted its budget.
// An empty graph is always done.
func (s *Simulation) Done() (done bool) {
	done = s.g.Empty() || s.settled || s.budget >= s.cfg.MaxTicks
	return done
}

// Ticks returns the total number of ticks run.
func (s *Simulation) Ticks() (ticks int) {
	ticks = s.ticks
	return ticks
}

// Energy returns the kinetic energy after the last tick.
func (s *Simulation) Energy() (energy float64) {
	energy = s.energy
	return energy
}

// Positions returns a snapshot of the current node positions.
func (s *Simulation) Positions() (positions map[string]Point) {
	positions = make(map[string]Point, len(s.pos))
	for i, n := range s.g.nodes {
		positions[n.ID] = s.pos[i]
	}
	return positions
}

// Frame returns a snapshot of the current state.
func (s *Simulation) Frame() (frame Frame) {
	frame = Frame{Tick: s.ticks, Energy: s.energy, Positions: s.Positions()}
	return frame
}

// Step advances the simulation one tick and returns the kinetic energy.
func (s *Simulation) Step() (energy float64) {
	n := len(s.pos)
	if n == 0 {
		s.settled = true
		s.energy = 0
		return energy
	}

	force := make([]Point, n)
	s.applyRepulsion(force)
	s.applySprings(force)
	s.applyGravity(force)

	keep := 1 - s.cfg.Damping
	for i := range s.pos {
		if s.pinned[i] {
			s.vel[i] = Point{}
			continue
		}

		v := Point{X: (s.vel[i].X + force[i].X) * keep, Y: (s.vel[i].Y + force[i].Y) * keep}
		speed := math.Hypot(v.X, v.Y)
		if s.cfg.MaxSpeed > 0 && speed > s.cfg.MaxSpeed {
			v.X *= s.cfg.MaxSpeed / speed
			v.Y *= s.cfg.MaxSpeed / speed
		}

		next := s.canvas.Clamp(Point{X: s.pos[i].X + v.X, Y: s.pos[i].Y + v.Y})
		// Walls absorb the motion they block.
		v = Point{X: next.X - s.pos[i].X, Y: next.Y - s.pos[i].Y}

		s.pos[i] = next
		s.vel[i] = v
		energy += 0.5 * (v.X*v.X + v.Y*v.Y)
	}

	s.ticks++
	s.budget++
	s.energy = energy
	if energy < s.cfg.EnergyThreshold {
		s.settled = true
	}
	return energy
}

func (s *Simulation) applyRepulsion(force []Point) {
	for i := 0; i < len(s.pos); i++ {
		for j := i + 1; j < len(s.pos); j++ {
			dx := s.pos[j].X - s.pos[i].X
			dy := s.pos[j].Y - s.pos[i].Y
			d2 := dx*dx + dy*dy
			if d2 < 1e-6 {
				// Coincident nodes: separate along a fixed diagonal.
				dx, dy = float64(j-i), float64(i+1)
				d2 = dx*dx + dy*dy
			}
			d := math.Sqrt(d2)
			f := s.cfg.Charge / math.Max(d2, 1)
			fx, fy := f*dx/d, f*dy/d
			force[i].X -= fx
			force[i].Y -= fy
			force[j].X += fx
			force[j].Y += fy
		}
	}
}

func (s *Simulation) applySprings(force []Point) {
	for _, l := range s.g.links {
		a := s.g.index[l.Source]
		b := s.g.index[l.Target]
		dx := s.pos[b].X - s.pos[a].X
		dy := s.pos[b].Y - s.pos[a].Y
		d := math.Max(math.Hypot(dx, dy), 1e-3)
		target := s.cfg.LinkDistance / math.Max(l.Strength, MinStrength)
		f := s.cfg.Spring * (d - target)
		fx, fy := f*dx/d, f*dy/d
		force[a].X += fx
		force[a].Y += fy
		force[b].X -= fx
		force[b].Y -= fy
	}
}

func (s *Simulation) applyGravity(force []Point) {
	center := s.canvas.Center()
	for i := range s.pos {
		force[i].X += s.cfg.Gravity * (center.X - s.pos[i].X)
		force[i].Y += s.cfg.Gravity * (center.Y - s.pos[i].Y)
	}
}

// Run steps until Done, calling onTick after every tick. An empty graph
// returns immediately without calling onTick. Cancelling ctx stops the loop
// between ticks.
func (s *Simulation) Run(ctx context.Context, onTick func(Frame)) (result Result, err error) {
	for !s.Done() {
		err = ctx.Err()
		if err != nil {
			err = errors.Wrap(err, "force simulation interrupted")
			break
		}

		s.Step()
		if onTick != nil {
			onTick(s.Frame())
		}
	}

	energy := s.energy
	if math.IsInf(energy, 1) {
		energy = 0
	}

	result = Result{
		Layout:    LayoutForce,
		Canvas:    s.canvas,
		Positions: s.Positions(),
		Ticks:     s.ticks,
		Energy:    energy,
	}
	return result, err
}

// ForceLayout adapts Simulation to the Layout interface.
type ForceLayout struct {
	Config ForceConfig
	OnTick func(Frame)
}

// Name returns the layout name.
func (f *ForceLayout) Name() (name string) {
	name = LayoutForce
	return name
}

// Apply runs a fresh simulation to completion.
func (f *ForceLayout) Apply(ctx context.Context, g *Graph, canvas Canvas) (result Result, err error) {
	sim := NewSimulation(g, canvas, f.Config)
	result, err = sim.Run(ctx, f.OnTick)
	return result, err
}
