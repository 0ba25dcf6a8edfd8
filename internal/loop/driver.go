package loop

// State of the periodic driver
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Driver fires a callback every interval game ticks while running.
// It is advanced by Step, once per game tick, so it never fires concurrently
// with anything else on the game goroutine.
type Driver struct {
	interval int
	elapsed  int
	state    State
	fire     func() error
}

// NewDriver creates an idle driver. Intervals below one tick are raised to one.
func NewDriver(interval int, fire func() error) *Driver {
	return &Driver{interval: max(interval, 1), fire: fire}
}

// Start switches to Running. The first fire happens one full interval later.
func (d *Driver) Start() {
	if d.state == Running {
		return
	}
	d.state = Running
	d.elapsed = 0
}

// Stop switches to Idle. Stopping an idle driver does nothing.
func (d *Driver) Stop() {
	d.state = Idle
	d.elapsed = 0
}

// Toggle flips the state and returns the new one.
func (d *Driver) Toggle() State {
	if d.state == Running {
		d.Stop()
	} else {
		d.Start()
	}
	return d.state
}

// State returns the current state
func (d *Driver) State() State { return d.state }

// Running reports whether the driver is Running
func (d *Driver) Running() bool { return d.state == Running }

// Interval returns the period in ticks
func (d *Driver) Interval() int { return d.interval }

// Step counts one game tick and fires when the interval is reached.
// The callback may stop the driver; that only affects future ticks.
func (d *Driver) Step() error {
	if d.state != Running {
		return nil
	}
	d.elapsed++
	if d.elapsed < d.interval {
		return nil
	}
	d.elapsed = 0
	return d.fire()
}
