package main

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/ts4z/pokertracker/assets"
	"github.com/ts4z/pokertracker/config"
	"github.com/ts4z/pokertracker/logging"
	"github.com/ts4z/pokertracker/screen"
	"github.com/ts4z/pokertracker/session"
	"github.com/ts4z/pokertracker/stack"
	"github.com/ts4z/pokertracker/webapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	config.Init()
	logging.Init(config.LogLevel())

	clock := clockwork.NewRealClock()
	subFS, err := fs.Sub(assets.FS, "fs")
	if err != nil {
		log.Fatal().Err(err).Msg("fs.Sub")
	}

	mode, err := stack.ParseMode(config.DefaultMode())
	if err != nil {
		log.Fatal().Err(err).Msg("bad default_mode")
	}

	screens, err := session.NewScreens(config.MaxScreens(), func() *screen.Screen {
		return screen.New(&screen.Config{Clock: clock, Mode: mode})
	})
	if err != nil {
		log.Fatal().Err(err).Msg("can't create screen cache")
	}
	defer screens.Purge()

	bakery, err := session.NewBakery(config.SessionSecret(), config.SecureCookies())
	if err != nil {
		log.Fatal().Err(err).Msg("can't create bakery")
	}

	app := webapp.New(&webapp.Config{
		Screens:        screens,
		Bakery:         bakery,
		SubFS:          subFS,
		Clock:          clock,
		AllowedOrigins: config.AllowedOrigins(),
	})

	if err := app.Serve(ctx, config.ListenAddress()); err != nil {
		log.Fatal().Err(err).Msg("can't serve")
	}
	log.Info().Msg("bye")
}
