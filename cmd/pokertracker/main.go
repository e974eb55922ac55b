package main

import (
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/ts4z/pokertracker/config"
	"github.com/ts4z/pokertracker/logging"
)

var clock clockwork.Clock = clockwork.NewRealClock()

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Short:         "Poker stack calculator and blind-level timer",
		Use:           "pokertracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Init()
			logging.Init(config.LogLevel())
		},
	}
	rootCmd.AddCommand(newCalcCmd(), newTimerCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
