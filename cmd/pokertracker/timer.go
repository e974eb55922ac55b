package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"maze.io/x/duration"

	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/stack"
	"github.com/ts4z/pokertracker/termclock"
	"github.com/ts4z/pokertracker/textutil"
)

var errNotWholeMinutes = errors.New("blind levels are whole minutes")

// parseFor takes "1h30m" and "2d" style durations as well as HH:MM:SS.
func parseFor(s string) (time.Duration, error) {
	var d time.Duration
	if md, err := duration.ParseDuration(s); err == nil {
		d = time.Duration(md)
	} else if cd, err := textutil.ParseDuration(s); err == nil {
		d = cd
	} else {
		return 0, fmt.Errorf("can't parse duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("%q: %w", s, textutil.ErrNegative)
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("%q: %w", s, errNotWholeMinutes)
	}
	return d, nil
}

func fieldsFor(d time.Duration) screen.TimerFields {
	hours := int64(d / time.Hour)
	minutes := int64((d % time.Hour) / time.Minute)
	return screen.TimerFields{
		Hours:   strconv.FormatInt(hours, 10),
		Minutes: strconv.FormatInt(minutes, 10),
	}
}

func newTimerCmd() *cobra.Command {
	var (
		fields  screen.TimerFields
		forText string
		start   bool
	)
	cmd := &cobra.Command{
		Use:   "timer",
		Short: "Run a blind-level countdown in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if forText != "" {
				d, err := parseFor(forText)
				if err != nil {
					return err
				}
				fields = fieldsFor(d)
			}
			// Catch typos before taking over the terminal.
			if _, err := fields.Duration(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			s := screen.New(&screen.Config{Clock: clock, Mode: stack.MFactor})
			defer s.Close()
			return termclock.Run(ctx, &termclock.Config{Screen: s, Fields: fields, Start: start})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&fields.Hours, "hours", "", "hours in the level")
	flags.StringVar(&fields.Minutes, "minutes", "", "minutes in the level")
	flags.StringVar(&forText, "for", "", "level length, e.g. 20m, 1h30m, or 01:30:00")
	flags.BoolVar(&start, "start", false, "start counting right away")
	cmd.MarkFlagsMutuallyExclusive("for", "hours")
	cmd.MarkFlagsMutuallyExclusive("for", "minutes")
	return cmd
}
