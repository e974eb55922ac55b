package stack

import (
	"errors"
	"testing"

	"github.com/ts4z/pokertracker/textutil"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		in   Inputs
		want string
	}{
		{
			name: "M-factor with nothing entered",
			mode: MFactor,
			in:   Inputs{},
			want: "0.00",
		},
		{
			name: "M-factor without ante",
			mode: MFactor,
			in:   Inputs{Stack: 1000, BigBlind: 50, SmallBlind: 25},
			want: "13.33",
		},
		{
			name: "M-factor with ante",
			mode: MFactor,
			in:   Inputs{Stack: 12000, BigBlind: 200, SmallBlind: 100, Ante: 25},
			want: "36.92",
		},
		{
			name: "M-factor with a stack but no blinds",
			mode: MFactor,
			in:   Inputs{Stack: 5000},
			want: "0.00",
		},
		{
			name: "big blinds with zero big blind",
			mode: BigBlindsRemaining,
			in:   Inputs{Stack: 500},
			want: "0.00",
		},
		{
			name: "big blinds",
			mode: BigBlindsRemaining,
			in:   Inputs{Stack: 500, BigBlind: 25},
			want: "20.00",
		},
		{
			name: "big blinds ignores small blind and ante",
			mode: BigBlindsRemaining,
			in:   Inputs{Stack: 500, BigBlind: 25, SmallBlind: 10, Ante: 5},
			want: "20.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(Compute(tt.mode, tt.in)); got != tt.want {
				t.Errorf("Compute(%v, %+v) = %s, want %s", tt.mode, tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeRoundedValue(t *testing.T) {
	got := Round(Compute(MFactor, Inputs{Stack: 1000, BigBlind: 50, SmallBlind: 25}))
	if got != 13.33 {
		t.Errorf("rounded M-factor = %v, want 13.33", got)
	}
}

func TestRoundHalfEven(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.125, "0.12"},
		{0.375, "0.38"},
		{2.5, "2.50"},
		{1.0 / 3, "0.33"},
		{2.0 / 3, "0.67"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFieldsParse(t *testing.T) {
	in, err := Fields{Stack: "1000", BigBlind: "50", SmallBlind: "", Ante: " "}.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Inputs{Stack: 1000, BigBlind: 50}
	if in != want {
		t.Errorf("Parse() = %+v, want %+v", in, want)
	}

	_, err = Fields{Stack: "1000", SmallBlind: "lots"}.Parse()
	if !errors.Is(err, textutil.ErrNotANumber) {
		t.Errorf("Parse() error = %v, want ErrNotANumber", err)
	}
}

func TestCalculatorCalculate(t *testing.T) {
	c := NewCalculator(MFactor)
	if c.Result() != "0.00" {
		t.Errorf("initial result = %q, want 0.00", c.Result())
	}

	c.SetFields(Fields{Stack: "1000", BigBlind: "50", SmallBlind: "25"})
	if err := c.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if c.Result() != "13.33" {
		t.Errorf("result = %q, want 13.33", c.Result())
	}

	c.SetFields(Fields{Stack: "x"})
	if err := c.Calculate(); err == nil {
		t.Fatal("Calculate with bad stack succeeded")
	}
	if c.Result() != "13.33" {
		t.Errorf("result after failed calculate = %q, want unchanged 13.33", c.Result())
	}
}

func TestCalculatorToggleTwice(t *testing.T) {
	c := NewCalculator(MFactor)
	c.SetFields(Fields{Stack: "500", BigBlind: "25"})

	if err := c.ToggleMode(); err != nil {
		t.Fatalf("ToggleMode: %v", err)
	}
	if c.Mode() != BigBlindsRemaining || c.Mode().Label() != "Big Blinds" {
		t.Errorf("after one toggle mode = %v (%q)", c.Mode(), c.Mode().Label())
	}
	if c.Result() != "20.00" {
		t.Errorf("after one toggle result = %q, want 20.00", c.Result())
	}

	if err := c.ToggleMode(); err != nil {
		t.Fatalf("ToggleMode: %v", err)
	}
	if c.Mode() != MFactor || c.Mode().Label() != "M Factor" {
		t.Errorf("after two toggles mode = %v (%q)", c.Mode(), c.Mode().Label())
	}
	if c.Result() != "20.00" {
		t.Errorf("after two toggles result = %q, want 20.00", c.Result())
	}
}

func TestCalculatorToggleClearsResultOnBadInput(t *testing.T) {
	c := NewCalculator(MFactor)
	c.SetFields(Fields{Stack: "1000", BigBlind: "50", SmallBlind: "25"})
	if err := c.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	c.SetFields(Fields{Stack: "?"})
	if err := c.ToggleMode(); err == nil {
		t.Fatal("ToggleMode with bad stack succeeded")
	}
	if c.Result() != "" {
		t.Errorf("result = %q, want cleared", c.Result())
	}
	if c.Mode() != BigBlindsRemaining {
		t.Errorf("mode = %v, want toggled even though recalculation failed", c.Mode())
	}
}

func TestCalculatorResetIdempotent(t *testing.T) {
	c := NewCalculator(BigBlindsRemaining)
	c.SetFields(Fields{Stack: "500", BigBlind: "25", SmallBlind: "10", Ante: "1"})
	if err := c.Calculate(); err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	c.Reset()
	once := *c
	c.Reset()
	if *c != once {
		t.Errorf("second reset changed state: %+v vs %+v", *c, once)
	}
	if c.Result() != "0.00" || c.Fields() != (Fields{}) {
		t.Errorf("after reset result = %q fields = %+v", c.Result(), c.Fields())
	}
	if c.Mode() != BigBlindsRemaining {
		t.Errorf("reset changed mode to %v", c.Mode())
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"mfactor", "M", " M-Factor "} {
		if m, err := ParseMode(s); err != nil || m != MFactor {
			t.Errorf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	for _, s := range []string{"bb", "BigBlinds", "big-blinds"} {
		if m, err := ParseMode(s); err != nil || m != BigBlindsRemaining {
			t.Errorf("ParseMode(%q) = %v, %v", s, m, err)
		}
	}
	if _, err := ParseMode("chips"); err == nil {
		t.Error("ParseMode(chips) succeeded")
	}
	for _, m := range []Mode{MFactor, BigBlindsRemaining} {
		back, err := ParseMode(m.String())
		if err != nil || back != m {
			t.Errorf("ParseMode(%v.String()) = %v, %v", m, back, err)
		}
	}
}
