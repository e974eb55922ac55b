package main

import (
	"context"

	"fyne.io/fyne/v2/app"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/config"
	"github.com/ts4z/pokertracker/gui"
	"github.com/ts4z/pokertracker/logging"
	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/stack"
)

func main() {
	config.Init()
	logging.Init(config.LogLevel())

	mode, err := stack.ParseMode(config.DefaultMode())
	if err != nil {
		log.Warn().Err(err).Msg("bad default_mode, using mfactor")
	}

	s := screen.New(&screen.Config{Clock: clockwork.NewRealClock(), Mode: mode})
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.NewWithID("io.github.ts4z.pokertracker")
	win := gui.BuildMainWindow(ctx, a, s)
	win.ShowAndRun()
}
