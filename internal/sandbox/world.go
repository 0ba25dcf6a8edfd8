// Package sandbox is a small grid world used to drive the viewer: agents walk to
// the nearest resource and pick it up. It exists to give the render loop a real
// collaborator and is deliberately simple.
package sandbox

import (
	"errors"
	"io/fs"
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/charmbracelet/log"

	"github.com/olivierh59500/gridview/internal/logger"
	"github.com/olivierh59500/gridview/internal/sim"
)

// Noise parameters for resource placement
const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = 3
)

// ErrNotStarted is returned by AdvanceTurn before Start.
var ErrNotStarted = errors.New("simulation not started")

// Option configures a World
type Option func(*World)

// WithScenarios reads scenarios from fsys instead of the embedded set.
func WithScenarios(fsys fs.FS) Option {
	return func(w *World) {
		w.scenarios = fsys
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		w.log = l
	}
}

// World implements sim.Simulation. It is not safe for concurrent use.
type World struct {
	scenarios fs.FS
	log       *log.Logger

	scenario  *Scenario
	turn      int
	resources []sim.Resource
	agents    []sim.Agent
	remaining int
	rng       *rand.Rand
}

var _ sim.Simulation = (*World)(nil)

// New creates a world with no scenario loaded.
func New(opts ...Option) *World {
	w := &World{
		scenarios: Scenarios,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start loads the scenario and places agents and resources, discarding any previous run.
func (w *World) Start(scenarioID string) error {
	sc, err := LoadScenario(w.scenarios, scenarioID)
	if err != nil {
		return err
	}

	w.scenario = sc
	w.turn = 0
	w.rng = rand.New(rand.NewSource(sc.Resources.Seed))
	w.agents = make([]sim.Agent, len(sc.Agents))
	for i, a := range sc.Agents {
		w.agents[i] = sim.Agent{Name: a.Name, Pos: sim.Point{X: a.X, Y: a.Y}, Image: a.Image}
	}
	w.resources = placeResources(sc, w.agents)
	w.remaining = len(w.resources)

	w.log.Info("world ready", "scenario", sc.ID, "grid", sc.Width*sc.Height,
		"agents", len(w.agents), "resources", len(w.resources))
	return nil
}

// AdvanceTurn moves every agent one cell toward its nearest resource.
// Once the world is inactive it does nothing.
func (w *World) AdvanceTurn() error {
	if w.scenario == nil {
		return ErrNotStarted
	}
	if !w.Active() {
		return nil
	}

	for i := range w.agents {
		a := &w.agents[i]
		target := w.nearest(a.Pos)
		if target < 0 {
			break
		}
		a.Pos = w.stepToward(a.Pos, w.resources[target].Pos)
		w.collectAt(a)
	}
	w.turn++

	w.log.Debug("turn done", "turn", w.turn, "remaining", w.remaining)
	return nil
}

// Active reports whether turns and resources remain.
func (w *World) Active() bool {
	return w.scenario != nil && w.turn < w.scenario.MaxTurns && w.remaining > 0
}

// Snapshot returns a copy of the state, or nil before Start.
func (w *World) Snapshot() *sim.Snapshot {
	if w.scenario == nil {
		return nil
	}
	return &sim.Snapshot{
		Turn:     w.turn,
		MaxTurns: w.scenario.MaxTurns,
		Active:   w.Active(),
		Env: sim.Environment{
			Width:     w.scenario.Width,
			Height:    w.scenario.Height,
			Resources: append([]sim.Resource(nil), w.resources...),
		},
		Agents: append([]sim.Agent(nil), w.agents...),
	}
}

// nearest returns the index of the closest uncollected resource, or -1.
func (w *World) nearest(p sim.Point) int {
	best, bestDist := -1, 0
	for i, r := range w.resources {
		if r.Collected {
			continue
		}
		d := manhattan(p, r.Pos)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// stepToward moves one cell along the longer axis; ties are broken at random.
func (w *World) stepToward(from, to sim.Point) sim.Point {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx == 0 && dy == 0 {
		return from
	}
	moveX := abs(dx) > abs(dy) || (abs(dx) == abs(dy) && w.rng.Intn(2) == 0)
	if moveX {
		from.X += sign(dx)
	} else {
		from.Y += sign(dy)
	}
	return from
}

func (w *World) collectAt(a *sim.Agent) {
	for i := range w.resources {
		r := &w.resources[i]
		if !r.Collected && r.Pos == a.Pos {
			r.Collected = true
			a.Collected++
			w.remaining--
		}
	}
}

// placeResources picks the Count cells with the highest Perlin noise above the
// threshold, skipping cells where agents start.
func placeResources(sc *Scenario, agents []sim.Agent) []sim.Resource {
	rs := sc.Resources
	noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, rs.Seed)

	occupied := make(map[sim.Point]bool, len(agents))
	for _, a := range agents {
		occupied[a.Pos] = true
	}

	type cell struct {
		p sim.Point
		v float64
	}
	var candidates []cell
	for y := 0; y < sc.Height; y++ {
		for x := 0; x < sc.Width; x++ {
			p := sim.Point{X: x, Y: y}
			if occupied[p] {
				continue
			}
			// Offset by half a cell: lattice points always sample zero.
			v := noise.Noise2D((float64(x)+0.5)*rs.Scale, (float64(y)+0.5)*rs.Scale)
			if v > rs.Threshold {
				candidates = append(candidates, cell{p, v})
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].v > candidates[j].v
	})

	n := min(rs.Count, len(candidates))
	out := make([]sim.Resource, n)
	for i := 0; i < n; i++ {
		out[i] = sim.Resource{Pos: candidates[i].p, Image: rs.Image}
	}
	return out
}

func manhattan(a, b sim.Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
