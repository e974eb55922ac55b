package screen

import (
	"github.com/ts4z/pokertracker/protocol"
)

// Snapshot is everything the screen shows, copied out at one instant.
type Snapshot struct {
	ProtocolVersion int

	Mode       string
	ModeLabel  string
	Result     string
	Stack      string
	BigBlind   string
	SmallBlind string
	Ante       string

	Hours              string
	Minutes            string
	TimerFieldsEnabled bool
	TimerDisplay       string
	TimerState         string
	ControlLabel       string
	RemainingMillis    int64
	// Expired is set once the countdown runs out on its own, until the
	// timer is started or reset again.
	Expired bool
}

func (s *Screen) snapshotLocked() *Snapshot {
	f := s.calc.Fields()
	st := s.timer.Status()
	return &Snapshot{
		ProtocolVersion: protocol.Version,

		Mode:       s.calc.Mode().String(),
		ModeLabel:  s.calc.Mode().Label(),
		Result:     s.calc.Result(),
		Stack:      f.Stack,
		BigBlind:   f.BigBlind,
		SmallBlind: f.SmallBlind,
		Ante:       f.Ante,

		Hours:              s.timerFields.Hours,
		Minutes:            s.timerFields.Minutes,
		TimerFieldsEnabled: st.FieldsEnabled(),
		TimerDisplay:       st.Display,
		TimerState:         st.State.String(),
		ControlLabel:       st.ControlLabel(),
		RemainingMillis:    st.RemainingMillis,
		Expired:            st.Expired,
	}
}
