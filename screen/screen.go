// Package screen is the whole of the app's one screen: the stack calculator,
// the blind-level countdown, and the text in their input fields.
//
// Every action and every countdown tick runs under one lock, so they are
// applied one at a time in arrival order.  Front ends read Snapshots, either
// on demand or by listening.
package screen

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/countdown"
	"github.com/ts4z/pokertracker/dep"
	"github.com/ts4z/pokertracker/stack"
	"github.com/ts4z/pokertracker/textutil"
)

// ErrTimerFieldsDisabled means the hour and minute fields were edited while
// the countdown had time on it.
var ErrTimerFieldsDisabled = errors.New("timer fields are disabled while the countdown has time left")

// ErrScreenClosed is returned by actions on a screen after Close.  Actions
// that can't fail just do nothing.
var ErrScreenClosed = errors.New("screen is closed")

// TimerFields are the hour and minute inputs as typed.
type TimerFields struct {
	Hours   string
	Minutes string
}

// Duration parses the fields.  Blank fields are zero.  A total too long for
// a time.Duration is an error wrapping textutil.ErrTooLarge.
func (f TimerFields) Duration() (time.Duration, error) {
	h, err := textutil.ParseWhole(f.Hours)
	if err != nil {
		return 0, fmt.Errorf("can't parse hours: %w", err)
	}
	m, err := textutil.ParseWhole(f.Minutes)
	if err != nil {
		return 0, fmt.Errorf("can't parse minutes: %w", err)
	}
	d, err := textutil.JoinClock(h, m, 0)
	if err != nil {
		return 0, fmt.Errorf("can't use %q hours and %q minutes: %w", f.Hours, f.Minutes, err)
	}
	return d, nil
}

type Screen struct {
	mu          sync.Mutex
	calc        *stack.Calculator
	timer       *countdown.Timer
	timerFields TimerFields
	closed      bool

	listeners []*listener
}

type Config struct {
	Clock clockwork.Clock
	Mode  stack.Mode
}

func New(cf *Config) *Screen {
	s := &Screen{
		calc: stack.NewCalculator(cf.Mode),
	}
	s.timer = countdown.NewTimer(dep.Required(cf.Clock), s.onTick)
	return s
}

// SetStackFields replaces the text of the four stack fields.
func (s *Screen) SetStackFields(f stack.Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.calc.SetFields(f)
	s.changedLocked()
}

// Calculate computes the current mode's ratio from the stack fields.
func (s *Screen) Calculate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScreenClosed
	}
	if err := s.calc.Calculate(); err != nil {
		return err
	}
	s.changedLocked()
	return nil
}

// ToggleMode flips between M-factor and big blinds and recalculates.  The
// mode flips even if the fields don't parse; the result is then left blank.
func (s *Screen) ToggleMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScreenClosed
	}
	err := s.calc.ToggleMode()
	s.changedLocked()
	return err
}

func (s *Screen) ResetStack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.calc.Reset()
	s.changedLocked()
}

// SetTimerFields replaces the hour and minute text.  The fields only take
// edits while the countdown is idle.
func (s *Screen) SetTimerFields(f TimerFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScreenClosed
	}
	if !s.timer.Status().FieldsEnabled() {
		return ErrTimerFieldsDisabled
	}
	s.timerFields = f
	s.changedLocked()
	return nil
}

// ToggleTimer is the start/stop button.  Idle: read the fields, clear them,
// and start.  Running: pause.  Paused: resume.
func (s *Screen) ToggleTimer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrScreenClosed
	}

	switch st := s.timer.Status(); st.State {
	case countdown.Idle:
		d, err := s.timerFields.Duration()
		if err != nil {
			return err
		}
		if err := s.timer.Start(d); err != nil {
			return err
		}
		s.timerFields = TimerFields{}
		log.Info().Dur("duration", d).Msg("blind timer started")
	case countdown.Running:
		s.timer.Pause()
		log.Info().Int64("remaining_ms", st.RemainingMillis).Msg("blind timer paused")
	case countdown.Paused:
		if err := s.timer.Resume(); err != nil {
			return err
		}
		log.Info().Int64("remaining_ms", st.RemainingMillis).Msg("blind timer resumed")
	}
	s.changedLocked()
	return nil
}

// ResetTimer cancels the countdown and clears the fields, from any state.
func (s *Screen) ResetTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.timer.Cancel()
	s.timerFields = TimerFields{}
	s.changedLocked()
}

// Suspend is for when nobody is looking at the screen any more.  Ticking
// stops, but the time left is kept so the countdown can be resumed.
func (s *Screen) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.timer.Status().State != countdown.Running {
		return
	}
	s.timer.Pause()
	log.Info().Msg("blind timer suspended")
	s.changedLocked()
}

// Close cancels the countdown and hangs up on every listener.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.timer.Cancel()
	for _, l := range s.listeners {
		l.close()
	}
	s.listeners = nil
}

func (s *Screen) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Screen) onTick(countdown.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Status is re-read under our lock, so a tick that arrives after a reset
	// publishes the reset state rather than the stale one.
	s.changedLocked()
}
