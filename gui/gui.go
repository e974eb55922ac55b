// Package gui is the desktop front end: one window showing one screen.
package gui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/stack"
)

var bigStyle = fyne.TextStyle{Bold: true, Monospace: true}

// view holds the widgets.  Every method runs on the fyne goroutine.
type view struct {
	screen *screen.Screen
	win    fyne.Window

	modeLabel  *widget.Label
	result     *widget.Label
	stack      *widget.Entry
	bigBlind   *widget.Entry
	smallBlind *widget.Entry
	ante       *widget.Entry

	timerDisplay *widget.Label
	hours        *widget.Entry
	minutes      *widget.Entry
	toggleTimer  *widget.Button

	// applying is set while apply is writing entries, so their OnChanged
	// hooks don't echo the text back.
	applying bool
}

func numericEntry(placeholder string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	return e
}

func newView(s *screen.Screen) *view {
	v := &view{
		screen:       s,
		modeLabel:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		result:       widget.NewLabelWithStyle("", fyne.TextAlignCenter, bigStyle),
		stack:        numericEntry("0"),
		bigBlind:     numericEntry("0"),
		smallBlind:   numericEntry("0"),
		ante:         numericEntry("0"),
		timerDisplay: widget.NewLabelWithStyle("", fyne.TextAlignCenter, bigStyle),
		hours:        numericEntry("0"),
		minutes:      numericEntry("0"),
	}
	for _, e := range []*widget.Entry{v.stack, v.bigBlind, v.smallBlind, v.ante} {
		e.OnChanged = func(string) { v.stackChanged() }
	}
	for _, e := range []*widget.Entry{v.hours, v.minutes} {
		e.OnChanged = func(string) { v.timerChanged() }
	}
	v.toggleTimer = widget.NewButton("Start", func() { v.do(v.screen.ToggleTimer) })
	v.apply(s.Snapshot())
	return v
}

func (v *view) stackFields() stack.Fields {
	return stack.Fields{
		Stack:      v.stack.Text,
		BigBlind:   v.bigBlind.Text,
		SmallBlind: v.smallBlind.Text,
		Ante:       v.ante.Text,
	}
}

func (v *view) stackChanged() {
	if !v.applying {
		v.screen.SetStackFields(v.stackFields())
	}
}

func (v *view) timerChanged() {
	if v.applying {
		return
	}
	// Disabled entries can't be typed in, so this only fails in a race
	// with the countdown starting; the next snapshot puts things right.
	_ = v.screen.SetTimerFields(screen.TimerFields{Hours: v.hours.Text, Minutes: v.minutes.Text})
}

// do runs a screen action, reports any error, and shows the result without
// waiting for the listener.
func (v *view) do(action func() error) {
	if err := action(); err != nil && v.win != nil {
		dialog.ShowError(err, v.win)
	}
	v.apply(v.screen.Snapshot())
}

func setText(e *widget.Entry, text string) {
	if e.Text != text {
		e.SetText(text)
	}
}

func (v *view) apply(snap *screen.Snapshot) {
	v.applying = true
	defer func() { v.applying = false }()

	v.modeLabel.SetText(snap.ModeLabel)
	v.result.SetText(snap.Result)
	setText(v.stack, snap.Stack)
	setText(v.bigBlind, snap.BigBlind)
	setText(v.smallBlind, snap.SmallBlind)
	setText(v.ante, snap.Ante)

	v.timerDisplay.SetText(snap.TimerDisplay)
	setText(v.hours, snap.Hours)
	setText(v.minutes, snap.Minutes)
	v.toggleTimer.SetText(snap.ControlLabel)
	for _, e := range []*widget.Entry{v.hours, v.minutes} {
		if snap.TimerFieldsEnabled {
			e.Enable()
		} else {
			e.Disable()
		}
	}
}

func (v *view) content() fyne.CanvasObject {
	calc := container.NewVBox(
		v.modeLabel,
		v.result,
		widget.NewForm(
			widget.NewFormItem("Stack", v.stack),
			widget.NewFormItem("Big blind", v.bigBlind),
			widget.NewFormItem("Small blind", v.smallBlind),
			widget.NewFormItem("Ante", v.ante),
		),
		container.NewGridWithColumns(3,
			widget.NewButton("Calculate", func() { v.do(v.screen.Calculate) }),
			widget.NewButton("Switch", func() { v.do(v.screen.ToggleMode) }),
			widget.NewButton("Reset", func() { v.do(func() error { v.screen.ResetStack(); return nil }) }),
		),
	)
	timer := container.NewVBox(
		widget.NewLabelWithStyle("Blind level", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		v.timerDisplay,
		widget.NewForm(
			widget.NewFormItem("Hours", v.hours),
			widget.NewFormItem("Minutes", v.minutes),
		),
		container.NewGridWithColumns(2,
			v.toggleTimer,
			widget.NewButton("Reset", func() { v.do(func() error { v.screen.ResetTimer(); return nil }) }),
		),
	)
	return container.NewGridWithColumns(2, calc, timer)
}

// BuildMainWindow makes the window and keeps it in step with s until ctx
// ends.  Sending the app to the background suspends the countdown.
func BuildMainWindow(ctx context.Context, a fyne.App, s *screen.Screen) fyne.Window {
	win := a.NewWindow("Poker Tracker")
	v := newView(s)
	v.win = win
	win.SetContent(v.content())
	win.Resize(fyne.NewSize(640, 360))

	a.Lifecycle().SetOnExitedForeground(s.Suspend)

	snaps := s.Listen(ctx)
	go func() {
		for snap := range snaps {
			fyne.Do(func() { v.apply(snap) })
		}
	}()
	return win
}
