// Package loop couples a tick-driven simulation stepper to the repaint cycle.
//
// All Loop methods must run on one goroutine, the one the windowing system calls
// Update and Draw on. A turn is applied and the view refreshed inside a single
// call, so a render pass only ever sees the snapshot of a completed turn.
package loop

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/olivierh59500/gridview/internal/logger"
	"github.com/olivierh59500/gridview/internal/render"
	"github.com/olivierh59500/gridview/internal/sim"
)

// DefaultInterval is 500ms at 60 ticks per second.
const DefaultInterval = 30

// Status texts
const (
	StatusReady    = "Ready to start"
	StatusStarted  = "Simulation started"
	StatusAuto     = "Simulation running automatically"
	StatusPaused   = "Simulation paused"
	StatusFinished = "Simulation finished"
)

// Preloader warms image caches before the first frame. *imagecache.Cache satisfies it.
type Preloader interface {
	Preload(ctx context.Context, keys []string) error
}

// Status is what the UI shell shows next to the controls.
type Status struct {
	Turn string // "Turn: 3/100"
	Text string
}

// Option configures a Loop
type Option func(*Loop)

// WithInterval sets the auto-advance period in game ticks.
func WithInterval(ticks int) Option {
	return func(l *Loop) {
		l.interval = ticks
	}
}

// WithLogger sets the logger
func WithLogger(lg *log.Logger) Option {
	return func(l *Loop) {
		l.log = lg
	}
}

// WithPreloader makes Start warm the images of the new world.
func WithPreloader(p Preloader) Option {
	return func(l *Loop) {
		l.preload = p
	}
}

// Loop drives turns and keeps the visible frame in step with them.
type Loop struct {
	sim      sim.Simulation
	renderer *render.Renderer
	driver   *Driver
	interval int
	preload  Preloader
	log      *log.Logger

	status     Status
	generation uint64
	advances   int
}

// New creates an idle loop over s.
func New(s sim.Simulation, r *render.Renderer, opts ...Option) *Loop {
	l := &Loop{
		sim:      s,
		renderer: r,
		interval: DefaultInterval,
		log:      logger.Discard(),
		status:   Status{Turn: "Turn: 0", Text: StatusReady},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.driver = NewDriver(l.interval, l.tick)
	return l
}

// Start initializes the simulation from a scenario, warms its images and refreshes.
// Simulation errors are returned unchanged.
func (l *Loop) Start(scenarioID string) error {
	if err := l.sim.Start(scenarioID); err != nil {
		return err
	}
	l.log.Info("simulation started", "scenario", scenarioID)
	if l.preload != nil {
		if err := l.preload.Preload(context.Background(), l.sim.Snapshot().ImageKeys()); err != nil {
			l.log.Warn("image preload interrupted", "err", err)
		}
	}
	l.status.Text = StatusStarted
	l.refresh()
	return nil
}

// StartAutoAdvance starts the periodic driver.
func (l *Loop) StartAutoAdvance() {
	l.driver.Start()
	l.status.Text = StatusAuto
	l.log.Debug("auto advance started", "interval", l.driver.Interval())
}

// StopAutoAdvance stops the periodic driver; it is a no-op when already idle.
func (l *Loop) StopAutoAdvance() {
	if !l.driver.Running() {
		return
	}
	l.driver.Stop()
	l.status.Text = StatusPaused
}

// ToggleAutoAdvance flips the driver and returns its new state.
func (l *Loop) ToggleAutoAdvance() State {
	st := l.driver.Toggle()
	if st == Running {
		l.status.Text = StatusAuto
	} else {
		l.status.Text = StatusPaused
	}
	l.log.Debug("auto advance toggled", "state", st)
	return st
}

// ManualAdvanceTurn runs exactly one turn and refreshes. The driver is left alone.
func (l *Loop) ManualAdvanceTurn() error {
	if err := l.advance(); err != nil {
		return err
	}
	l.refresh()
	return nil
}

// Update is called once per game tick.
func (l *Loop) Update() error {
	return l.driver.Step()
}

// RenderFrame draws the latest completed turn onto s. Before Start it draws nothing.
func (l *Loop) RenderFrame(s render.Surface) {
	l.renderer.Render(s, l.sim.Snapshot())
}

// tick is the driver callback: one turn then one refresh, or stop when done.
func (l *Loop) tick() error {
	if !l.sim.Active() {
		l.driver.Stop()
		if l.sim.Snapshot() == nil {
			l.status.Text = StatusReady
		} else {
			l.status.Text = StatusFinished
		}
		l.log.Info("auto advance stopped, simulation inactive")
		return nil
	}
	if err := l.advance(); err != nil {
		l.driver.Stop()
		l.status.Text = fmt.Sprintf("Error: %v", err)
		return err
	}
	l.refresh()
	return nil
}

func (l *Loop) advance() error {
	if err := l.sim.AdvanceTurn(); err != nil {
		return err
	}
	l.advances++
	return nil
}

// refresh updates the status and marks the frame stale.
func (l *Loop) refresh() {
	if snap := l.sim.Snapshot(); snap != nil {
		l.status.Turn = fmt.Sprintf("Turn: %d/%d", snap.Turn, snap.MaxTurns)
		if !l.sim.Active() {
			if l.status.Text != StatusFinished {
				l.log.Info("simulation finished", "turn", snap.Turn)
			}
			l.status.Text = StatusFinished
		}
	}
	l.generation++
}

// State returns the driver state
func (l *Loop) State() State { return l.driver.State() }

// Status returns the texts for the status bar.
func (l *Loop) Status() Status { return l.status }

// SetStatusText overrides the status text, e.g. to show an error.
func (l *Loop) SetStatusText(s string) { l.status.Text = s }

// Generation changes every time the visible frame is stale.
func (l *Loop) Generation() uint64 { return l.generation }

// Advances counts turns requested through this loop.
func (l *Loop) Advances() int { return l.advances }
