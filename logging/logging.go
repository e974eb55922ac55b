// Package logging sets up the global zerolog logger the way every
// pokertracker binary wants it.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global logger at stderr, human-readable, at the named
// level.  Unknown levels fall back to info.
func Init(level string) {
	InitTo(os.Stderr, level)
}

func InitTo(w io.Writer, level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	zerolog.SetGlobalLevel(ParseLevel(level))
}

func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
