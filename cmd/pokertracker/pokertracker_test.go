package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/stack"
	"github.com/ts4z/pokertracker/textutil"
)

func TestModeValue(t *testing.T) {
	var v modeValue
	if err := v.Set("bb"); err != nil {
		t.Fatal(err)
	}
	if v.mode != stack.BigBlindsRemaining || !v.set || v.String() != "bb" {
		t.Errorf("after Set(bb): %+v", v)
	}
	if err := v.Set("chips"); err == nil {
		t.Error("Set(chips) succeeded")
	}
}

func TestCalculate(t *testing.T) {
	r, err := calculate(stack.MFactor, stack.Fields{Stack: "1000", BigBlind: "50", SmallBlind: "25"})
	if err != nil {
		t.Fatal(err)
	}
	if r.Result != "13.33" || r.Label != "M Factor" {
		t.Errorf("calculate = %+v", r)
	}

	if _, err := calculate(stack.MFactor, stack.Fields{Ante: "some"}); !errors.Is(err, textutil.ErrNotANumber) {
		t.Errorf("bad ante error = %v", err)
	}
}

func TestWriteResult(t *testing.T) {
	r, err := calculate(stack.BigBlindsRemaining, stack.Fields{Stack: "500", BigBlind: "25"})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := writeResult(&buf, "json", r); err != nil {
		t.Fatal(err)
	}
	var fromJSON calcResult
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}
	if fromJSON != *r {
		t.Errorf("json = %+v, want %+v", fromJSON, *r)
	}

	buf.Reset()
	if err := writeResult(&buf, "yaml", r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `result: "20.00"`) {
		t.Errorf("yaml = %s", buf.String())
	}
	var fromYAML calcResult
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil || fromYAML != *r {
		t.Errorf("yaml round trip = %+v, %v", fromYAML, err)
	}

	buf.Reset()
	if err := writeResult(&buf, "text", r); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "20.00") || !strings.Contains(buf.String(), "Big Blinds") {
		t.Errorf("text = %s", buf.String())
	}

	if err := writeResult(&buf, "xml", r); err == nil {
		t.Error("xml output accepted")
	}
}

func TestParseFor(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"20m", 20 * time.Minute, false},
		{"1h30m", 90 * time.Minute, false},
		{"01:30:00", 90 * time.Minute, false},
		{"90:00", 90 * time.Minute, false},
		{"1d", 24 * time.Hour, false},
		{"90s", 0, true},
		{"00:00:30", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseFor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseFor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFieldsFor(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want screen.TimerFields
	}{
		{90 * time.Minute, screen.TimerFields{Hours: "1", Minutes: "30"}},
		{20 * time.Minute, screen.TimerFields{Hours: "0", Minutes: "20"}},
		{26 * time.Hour, screen.TimerFields{Hours: "26", Minutes: "0"}},
	}
	for _, tt := range tests {
		if got := fieldsFor(tt.in); got != tt.want {
			t.Errorf("fieldsFor(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestCalcCommand(t *testing.T) {
	cmd := newCalcCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--mode", "bb", "--stack", "500", "--bb", "25", "-o", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	var r calcResult
	if err := json.Unmarshal(out.Bytes(), &r); err != nil {
		t.Fatal(err)
	}
	if r.Result != "20.00" || r.Mode != "bb" {
		t.Errorf("calc output = %+v", r)
	}
}
