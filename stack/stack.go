// Package stack computes how deep a player's stack is relative to the
// blinds, either as an M-factor or as big blinds remaining.
package stack

import (
	"fmt"
	"math"

	"github.com/ts4z/pokertracker/textutil"
)

const initialResult = "0.00"

// Inputs are the parsed values of the four stack fields.
type Inputs struct {
	Stack      float64
	BigBlind   float64
	SmallBlind float64
	Ante       float64
}

// Fields are the four stack fields as typed.
type Fields struct {
	Stack      string
	BigBlind   string
	SmallBlind string
	Ante       string
}

// Compute returns the ratio for mode.  A zero divisor yields zero.
func Compute(mode Mode, in Inputs) float64 {
	switch mode {
	case MFactor:
		orbit := in.SmallBlind + in.BigBlind + in.Ante
		if orbit == 0 {
			return 0
		}
		return in.Stack / orbit
	case BigBlindsRemaining:
		if in.BigBlind == 0 {
			return 0
		}
		return in.Stack / in.BigBlind
	default:
		panic(fmt.Sprintf("can't happen: unknown mode %d", int(mode)))
	}
}

// Round rounds to two decimal places, ties to even.
func Round(x float64) float64 {
	return math.RoundToEven(x*100) / 100
}

// Format renders a result the way the screen shows it: two decimals.
func Format(x float64) string {
	return fmt.Sprintf("%.2f", Round(x))
}

// Parse converts typed fields into Inputs.  Blank fields are zero.  The
// error names the first field that doesn't parse.
func (f Fields) Parse() (Inputs, error) {
	var in Inputs
	for _, p := range []struct {
		name string
		text string
		dst  *float64
	}{
		{"stack", f.Stack, &in.Stack},
		{"big blind", f.BigBlind, &in.BigBlind},
		{"small blind", f.SmallBlind, &in.SmallBlind},
		{"ante", f.Ante, &in.Ante},
	} {
		v, err := textutil.ParseAmount(p.text)
		if err != nil {
			return Inputs{}, fmt.Errorf("can't parse %s: %w", p.name, err)
		}
		*p.dst = v
	}
	return in, nil
}

// Calculator is the stack half of the screen: the mode, the four fields,
// and the result text.  It is not safe for concurrent use.
type Calculator struct {
	mode   Mode
	fields Fields
	result string
}

func NewCalculator(mode Mode) *Calculator {
	return &Calculator{
		mode:   mode,
		result: initialResult,
	}
}

func (c *Calculator) Mode() Mode { return c.mode }

func (c *Calculator) Fields() Fields { return c.fields }

// Result is the text shown in the result label.
func (c *Calculator) Result() string { return c.result }

func (c *Calculator) SetFields(f Fields) { c.fields = f }

// Calculate recomputes the result from the current fields.  On a parse
// error the result is left alone.
func (c *Calculator) Calculate() error {
	in, err := c.fields.Parse()
	if err != nil {
		return err
	}
	c.result = Format(Compute(c.mode, in))
	return nil
}

// ToggleMode switches modes, clears the result, and recalculates from the
// fields already entered.
func (c *Calculator) ToggleMode() error {
	c.mode = c.mode.Toggled()
	c.result = ""
	return c.Calculate()
}

// Reset clears the fields and zeroes the result.  The mode is kept.
func (c *Calculator) Reset() {
	c.fields = Fields{}
	c.result = initialResult
}
