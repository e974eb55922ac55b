// Package countdown runs the blind-level timer: a count of milliseconds that
// drops by one second per tick until it reaches zero.
//
// Countdown is the bare state machine; something else has to call Tick once
// a second.  Timer is that something, driven by a clockwork clock.
package countdown

import (
	"errors"
	"fmt"
	"time"

	"github.com/ts4z/pokertracker/textutil"
)

const (
	// TickInterval is how often a running countdown ticks.
	TickInterval = time.Second

	millisPerTick = int64(TickInterval / time.Millisecond)
)

var (
	ErrNotIdle    = errors.New("countdown already has time on it")
	ErrNoTimeLeft = errors.New("countdown has no time left")
)

type State int

const (
	// Idle: nothing on the clock, inputs enabled.
	Idle State = iota
	// Running: ticking, inputs disabled.
	Running
	// Paused: time left but not ticking, inputs still disabled.
	Paused
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Countdown is not safe for concurrent use.
type Countdown struct {
	remainingMillis int64
	running         bool
	// expired is set when ticking reached zero, until the next Start or Reset.
	expired bool
}

// Start loads d (truncated to whole seconds) and starts running.  It reports
// whether the countdown is now running; a zero duration leaves it Idle.
func (c *Countdown) Start(d time.Duration) (bool, error) {
	if c.State() != Idle {
		return false, ErrNotIdle
	}
	if d < 0 {
		return false, fmt.Errorf("can't start countdown at %v: %w", d, textutil.ErrNegative)
	}
	c.remainingMillis = d.Truncate(TickInterval).Milliseconds()
	c.running = c.remainingMillis > 0
	c.expired = false
	return c.running, nil
}

// Pause stops ticking.  Pausing anything but a running countdown does
// nothing.
func (c *Countdown) Pause() {
	c.running = false
}

// Resume continues a paused countdown without touching the time left.
func (c *Countdown) Resume() error {
	switch c.State() {
	case Running:
		return nil
	case Paused:
		c.running = true
		return nil
	default:
		return fmt.Errorf("can't resume: %w", ErrNoTimeLeft)
	}
}

// Reset clears the countdown back to Idle.
func (c *Countdown) Reset() {
	c.running = false
	c.remainingMillis = 0
	c.expired = false
}

// Tick takes one second off a running countdown.  It reports true on the
// tick that reaches zero, at which point the countdown is Idle.  Ticks on a
// countdown that isn't running are ignored.
func (c *Countdown) Tick() bool {
	if !c.running {
		return false
	}
	c.remainingMillis -= millisPerTick
	if c.remainingMillis <= 0 {
		c.remainingMillis = 0
		c.running = false
		c.expired = true
		return true
	}
	return false
}

func (c *Countdown) State() State {
	switch {
	case c.running:
		return Running
	case c.remainingMillis > 0:
		return Paused
	default:
		return Idle
	}
}

func (c *Countdown) RemainingMillis() int64 {
	return c.remainingMillis
}

// Display is the HH:MM:SS form of the time left.
func (c *Countdown) Display() string {
	return textutil.FormatClock(c.remainingMillis)
}

// Status is a copy of a countdown's externally visible state.
type Status struct {
	State           State
	RemainingMillis int64
	Display         string
	// Expired means the level ran out on its own, as opposed to being reset.
	Expired bool
}

func (c *Countdown) Status() Status {
	return Status{
		State:           c.State(),
		RemainingMillis: c.remainingMillis,
		Display:         c.Display(),
		Expired:         c.expired,
	}
}

// ControlLabel is the text on the start/stop button.
func (s Status) ControlLabel() string {
	if s.State == Running {
		return "Stop"
	}
	return "Start"
}

// FieldsEnabled says whether the hour and minute inputs accept edits.
func (s Status) FieldsEnabled() bool {
	return s.State == Idle
}
