package stack

import (
	"fmt"
	"strings"
)

// Mode selects which stack-depth ratio the calculator shows.
type Mode int

const (
	// MFactor is stack / (small blind + big blind + ante).
	MFactor Mode = iota
	// BigBlindsRemaining is stack / big blind.
	BigBlindsRemaining
)

var modeNames = map[Mode]string{
	MFactor:            "mfactor",
	BigBlindsRemaining: "bb",
}

var modeLabels = map[Mode]string{
	MFactor:            "M Factor",
	BigBlindsRemaining: "Big Blinds",
}

func (m Mode) String() string {
	if n, ok := modeNames[m]; ok {
		return n
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Label is what the screen shows next to the result.
func (m Mode) Label() string {
	if l, ok := modeLabels[m]; ok {
		return l
	}
	return m.String()
}

// Toggled returns the other mode.
func (m Mode) Toggled() Mode {
	switch m {
	case MFactor:
		return BigBlindsRemaining
	case BigBlindsRemaining:
		return MFactor
	default:
		panic(fmt.Sprintf("can't happen: unknown mode %d", int(m)))
	}
}

// ParseMode accepts the short names ("mfactor", "bb") as well as a few
// spellings people actually type.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mfactor", "m", "m-factor", "m_factor":
		return MFactor, nil
	case "bb", "bigblinds", "big-blinds", "big_blinds":
		return BigBlindsRemaining, nil
	default:
		return MFactor, fmt.Errorf("unknown mode %q (want mfactor or bb)", s)
	}
}
