package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ts4z/pokertracker/config"
	"github.com/ts4z/pokertracker/stack"
)

// modeValue lets --mode take the same spellings as the config file.
type modeValue struct {
	mode stack.Mode
	set  bool
}

var _ pflag.Value = &modeValue{}

func (v *modeValue) String() string { return v.mode.String() }

func (v *modeValue) Set(s string) error {
	m, err := stack.ParseMode(s)
	if err != nil {
		return err
	}
	v.mode, v.set = m, true
	return nil
}

func (v *modeValue) Type() string { return "mode" }

type calcResult struct {
	Mode       string  `json:"mode" yaml:"mode"`
	Label      string  `json:"label" yaml:"label"`
	Stack      float64 `json:"stack" yaml:"stack"`
	BigBlind   float64 `json:"big_blind" yaml:"big_blind"`
	SmallBlind float64 `json:"small_blind" yaml:"small_blind"`
	Ante       float64 `json:"ante" yaml:"ante"`
	Result     string  `json:"result" yaml:"result"`
}

func calculate(mode stack.Mode, f stack.Fields) (*calcResult, error) {
	in, err := f.Parse()
	if err != nil {
		return nil, err
	}
	return &calcResult{
		Mode:       mode.String(),
		Label:      mode.Label(),
		Stack:      in.Stack,
		BigBlind:   in.BigBlind,
		SmallBlind: in.SmallBlind,
		Ante:       in.Ante,
		Result:     stack.Format(stack.Compute(mode, in)),
	}, nil
}

func writeResult(w io.Writer, format string, r *calcResult) error {
	switch format {
	case "text", "":
		table, err := pterm.DefaultTable.
			WithHasHeader().
			WithBoxed().
			WithData(pterm.TableData{
				{"Stack", "Big blind", "Small blind", "Ante", r.Label},
				{
					fmt.Sprint(r.Stack),
					fmt.Sprint(r.BigBlind),
					fmt.Sprint(r.SmallBlind),
					fmt.Sprint(r.Ante),
					r.Result,
				},
			}).
			Srender()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, table)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	default:
		return fmt.Errorf("unknown output format %q (want text, json, or yaml)", format)
	}
}

func newCalcCmd() *cobra.Command {
	var (
		mode   modeValue
		fields stack.Fields
		output string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute M-factor or big blinds remaining for one stack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !mode.set {
				if err := mode.Set(config.DefaultMode()); err != nil {
					return fmt.Errorf("default_mode: %w", err)
				}
			}
			r, err := calculate(mode.mode, fields)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), output, r)
		},
	}
	flags := cmd.Flags()
	flags.Var(&mode, "mode", "mfactor or bb (default from config, else mfactor)")
	flags.StringVar(&fields.Stack, "stack", "", "chips in the stack")
	flags.StringVar(&fields.BigBlind, "bb", "", "big blind")
	flags.StringVar(&fields.SmallBlind, "sb", "", "small blind")
	flags.StringVar(&fields.Ante, "ante", "", "ante per hand")
	flags.StringVarP(&output, "output", "o", "text", "text, json, or yaml")
	return cmd
}
