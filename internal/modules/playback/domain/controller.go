package domain

import "math"

// State is the playback mode. Scrolling is distinct from plain Viewing
// because close and speed handling branch on it.
type State int

const (
	StateIdle State = iota
	StateViewing
	StateScrolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateViewing:
		return "viewing"
	case StateScrolling:
		return "scrolling"
	}
	return "unknown"
}

const (
	MinSpeed     = 0.1
	MaxSpeed     = 8.0
	SpeedStep    = 0.1
	DefaultSpeed = 1.0
)

// Controller is the auto-scroll state machine. The position accumulator is
// the single source of truth while scrolling: each tick adds speed to it and
// the view projects it, never the other way around, so rounding in the view
// cannot drift the position.
//
// Ticks carry the epoch they were scheduled under. Every transition out of
// Scrolling bumps the epoch, so a tick scheduled before the transition can
// never advance the position after it.
type Controller struct {
	state    State
	speed    float64
	position float64
	epoch    uint64
}

func NewController() *Controller {
	return &Controller{state: StateIdle, speed: DefaultSpeed}
}

func (c *Controller) State() State      { return c.state }
func (c *Controller) Speed() float64    { return c.speed }
func (c *Controller) Position() float64 { return c.position }

// Epoch identifies the current scrolling run. Schedule ticks with it and
// hand it back to Tick.
func (c *Controller) Epoch() uint64 { return c.epoch }

// Open enters Viewing from Idle when a document opens. The user controls
// position manually until Play.
func (c *Controller) Open() {
	if c.state == StateIdle {
		c.state = StateViewing
	}
}

// Play starts auto-scroll from the given baseline position. Speed is
// whatever it was left at; stopping never resets it.
func (c *Controller) Play(baseline float64) bool {
	if c.state != StateViewing {
		return false
	}
	c.position = baseline
	c.state = StateScrolling
	return true
}

// Pause returns to Viewing and invalidates any tick already scheduled.
func (c *Controller) Pause() {
	if c.state == StateScrolling {
		c.state = StateViewing
		c.epoch++
	}
}

// Close releases playback entirely; the owning view releases the session.
func (c *Controller) Close() {
	if c.state == StateScrolling {
		c.epoch++
	}
	c.state = StateIdle
}

// Tick advances the accumulator by one speed step. It reports whether the
// tick applied; a stale epoch or a non-scrolling state is a no-op and the
// caller must not reschedule.
func (c *Controller) Tick(epoch uint64) bool {
	if c.state != StateScrolling || epoch != c.epoch {
		return false
	}
	c.position += c.speed
	return true
}

// SetSpeed clamps to [MinSpeed, MaxSpeed] and quantizes to the step grid.
// Takes effect on the next tick.
func (c *Controller) SetSpeed(v float64) float64 {
	v = math.Round(v/SpeedStep) * SpeedStep
	if v < MinSpeed {
		v = MinSpeed
	}
	if v > MaxSpeed {
		v = MaxSpeed
	}
	c.speed = v
	return c.speed
}

// AdjustSpeed nudges the rate by delta within the same bounds.
func (c *Controller) AdjustSpeed(delta float64) float64 {
	return c.SetSpeed(c.speed + delta)
}
