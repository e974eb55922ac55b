// Package kbd turns button presses and keystrokes from the browser into
// screen operations.
package kbd

import (
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/he"
	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/stack"
)

// Event is what the browser posts: the event name plus whatever the input
// fields held at the time.
type Event struct {
	Event      string
	Stack      string
	BigBlind   string
	SmallBlind string
	Ante       string
	Hours      string
	Minutes    string
}

func (e *Event) stackFields() stack.Fields {
	return stack.Fields{Stack: e.Stack, BigBlind: e.BigBlind, SmallBlind: e.SmallBlind, Ante: e.Ante}
}

func (e *Event) timerFields() screen.TimerFields {
	return screen.TimerFields{Hours: e.Hours, Minutes: e.Minutes}
}

// takeTimerFields copies the hour and minute fields into the screen if the
// screen will take them.  Text in a disabled field is a conflict.
func takeTimerFields(s *screen.Screen, e *Event) error {
	if e.Hours == "" && e.Minutes == "" && !s.Snapshot().TimerFieldsEnabled {
		return nil
	}
	return s.SetTimerFields(e.timerFields())
}

type EventDispatcher struct {
	eventToAction map[string]func(*screen.Screen, *Event) error
}

func NewEventDispatcher() *EventDispatcher {
	e2a := map[string]func(*screen.Screen, *Event) error{
		"Calculate": func(s *screen.Screen, e *Event) error {
			s.SetStackFields(e.stackFields())
			return s.Calculate()
		},
		"ToggleMode": func(s *screen.Screen, e *Event) error {
			s.SetStackFields(e.stackFields())
			return s.ToggleMode()
		},
		"ResetStack": func(s *screen.Screen, e *Event) error { s.ResetStack(); return nil },
		"ToggleTimer": func(s *screen.Screen, e *Event) error {
			if err := takeTimerFields(s, e); err != nil {
				return err
			}
			return s.ToggleTimer()
		},
		"ResetTimer": func(s *screen.Screen, e *Event) error { s.ResetTimer(); return nil },
		"Suspend":    func(s *screen.Screen, e *Event) error { s.Suspend(); return nil },
	}
	return &EventDispatcher{eventToAction: e2a}
}

// Events lists the event names the dispatcher knows, sorted.
func (d *EventDispatcher) Events() []string {
	return slices.Sorted(maps.Keys(d.eventToAction))
}

// Dispatch applies one event to s.
func (d *EventDispatcher) Dispatch(s *screen.Screen, e *Event) error {
	h, ok := d.eventToAction[e.Event]
	if !ok {
		return he.HTTPCodedErrorf(http.StatusNotFound, "unknown screen event %q, want one of %s",
			e.Event, strings.Join(d.Events(), ", "))
	}
	return h(s, e)
}

// HandleEvent reads an Event from the request body and applies it to s.
func (d *EventDispatcher) HandleEvent(s *screen.Screen, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return he.HTTPCodedErrorf(http.StatusBadRequest, "can't read request body: %w", err)
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		log.Debug().Err(err).Str("body", string(body)).Msg("can't unmarshal screen event")
		return he.HTTPCodedErrorf(http.StatusBadRequest, "can't decode screen event: %w", err)
	}

	log.Debug().Str("event", event.Event).Msg("screen event")
	return d.Dispatch(s, &event)
}
