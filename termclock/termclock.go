// Package termclock shows the blind-level countdown in a terminal, in big
// letters, and takes single keystrokes to drive it.
package termclock

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/ts4z/pokertracker/dep"
	"github.com/ts4z/pokertracker/screen"
)

type action int

const (
	noAction action = iota
	toggleAction
	resetAction
	quitAction
)

const (
	ctrlC = 3
	ctrlD = 4
)

func actionFor(b byte) action {
	switch b {
	case ' ':
		return toggleAction
	case 'r', 'R':
		return resetAction
	case 'q', 'Q', ctrlC, ctrlD:
		return quitAction
	default:
		return noAction
	}
}

// display is the part of pterm's AreaPrinter we use.
type display interface {
	Update(text ...any)
}

const help = "space start/stop · r reset · q quit"

func render(snap *screen.Snapshot) string {
	big, err := pterm.DefaultBigText.WithLetters(putils.LettersFromString(snap.TimerDisplay)).Srender()
	if err != nil {
		big = snap.TimerDisplay + "\n"
	}
	state := pterm.Green(snap.TimerState)
	if snap.TimerState == "paused" {
		state = pterm.Yellow(snap.TimerState)
	}
	return fmt.Sprintf("%s\n%s  %s\n", big, state, pterm.Gray(help))
}

type Clock struct {
	screen  *screen.Screen
	fields  screen.TimerFields
	display display
	keys    <-chan byte
	bell    io.Writer
	raw     bool
}

// toggle starts the countdown from the configured fields when idle, and
// otherwise pauses or resumes it.
func (c *Clock) toggle() error {
	if c.screen.Snapshot().TimerState == "idle" {
		if err := c.screen.SetTimerFields(c.fields); err != nil {
			return err
		}
	}
	return c.screen.ToggleTimer()
}

func (c *Clock) show(snap *screen.Snapshot) {
	text := render(snap)
	if c.raw {
		text = strings.ReplaceAll(text, "\n", "\r\n")
	}
	c.display.Update(text)
}

func (c *Clock) run(ctx context.Context) error {
	snaps := c.screen.Listen(ctx)
	var last *screen.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			// A reset also goes from running to idle, so only a countdown that
			// ran out rings.
			if last != nil && !last.Expired && snap.Expired {
				fmt.Fprint(c.bell, "\a")
				log.Info().Msg("blind level over")
			}
			last = snap
			c.show(snap)
		case b, ok := <-c.keys:
			if !ok {
				return nil
			}
			switch actionFor(b) {
			case toggleAction:
				if err := c.toggle(); err != nil {
					return err
				}
			case resetAction:
				c.screen.ResetTimer()
			case quitAction:
				return nil
			}
		}
	}
}

func readKeys(r io.Reader) <-chan byte {
	ch := make(chan byte)
	go func() {
		defer close(ch)
		buf := make([]byte, 1)
		for {
			if _, err := r.Read(buf); err != nil {
				return
			}
			ch <- buf[0]
		}
	}()
	return ch
}

type Config struct {
	Screen *screen.Screen
	Fields screen.TimerFields
	// Start begins counting right away rather than waiting for space.
	Start bool
}

// Run takes over the terminal until the user quits or ctx ends.
func Run(ctx context.Context, cf *Config) error {
	c := &Clock{
		screen: dep.Required(cf.Screen),
		fields: cf.Fields,
		bell:   os.Stdout,
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		saved, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("can't put terminal in raw mode: %w", err)
		}
		defer term.Restore(fd, saved)
		c.raw = true
	}
	c.keys = readKeys(os.Stdin)

	area, err := pterm.DefaultArea.WithFullscreen(false).Start()
	if err != nil {
		return fmt.Errorf("can't start display: %w", err)
	}
	defer area.Stop()
	c.display = area

	if cf.Start {
		if err := c.toggle(); err != nil {
			return err
		}
	}
	return c.run(ctx)
}
