// Package sim defines what the viewer needs from a grid simulation.
// Implementations own all state; the viewer only reads snapshots.
package sim

// Point is a cell position on the grid
type Point struct {
	X, Y int
}

// Resource is a collectable item lying on a cell
type Resource struct {
	Pos       Point
	Collected bool
	Image     string // Image key, resolved by the image cache
}

// Agent is a moving collector
type Agent struct {
	Name      string
	Pos       Point
	Collected int // Resources picked up so far
	Image     string
}

// Environment is the grid and what lies on it
type Environment struct {
	Width, Height int
	Resources     []Resource
}

// Snapshot is the full readable state after a completed turn.
// A snapshot must not change once handed out.
type Snapshot struct {
	Turn     int
	MaxTurns int
	Active   bool
	Env      Environment
	Agents   []Agent
}

// ImageKeys returns the distinct image keys referenced by the snapshot, in first-seen order.
func (s *Snapshot) ImageKeys() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if k == "" || seen[k] {
			return
		}
		seen[k] = true
		keys = append(keys, k)
	}
	for _, r := range s.Env.Resources {
		add(r.Image)
	}
	for _, a := range s.Agents {
		add(a.Image)
	}
	return keys
}

// Simulation is the collaborator driven by the render loop.
// Start and AdvanceTurn report their own errors; callers pass them on unchanged.
type Simulation interface {
	// Start (re)initializes the world from a scenario id.
	Start(scenarioID string) error
	// AdvanceTurn runs exactly one turn.
	AdvanceTurn() error
	// Active reports whether more turns remain.
	Active() bool
	// Snapshot returns the current state, or nil before Start.
	Snapshot() *Snapshot
}
