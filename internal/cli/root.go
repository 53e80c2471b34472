// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cli implements the netsim command line interface.
//
package cli

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/db47h/netsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
//
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Workers    int
	MaxDelta   int
	Vectorized bool
}

// ValidFormats defines the allowed output formats.
//
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the netsim CLI.
//
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "netsim",
		Short: "netsim - gate level logic simulator",
		Long: `A zero-delay, cycle-based gate-level simulator with 3-valued logic.

Modules are described in YAML scenario files built from library parts,
together with stimulus steps and expected outputs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return errors.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.MaxDelta < 0 {
				return errors.Errorf("invalid max-delta %d", opts.MaxDelta)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().IntVar(&opts.Workers, "workers", 0, "number of worker goroutines, negative for GOMAXPROCS")
	cmd.PersistentFlags().IntVar(&opts.MaxDelta, "max-delta", netsim.DefaultMaxDelta, "maximum number of delta cycles per frame")
	cmd.PersistentFlags().BoolVar(&opts.Vectorized, "vectorized", false, "evaluate wide gates 64 bits at a time")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSchedCommand(opts))
	cmd.AddCommand(NewPartsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// logger returns a text logger writing to w. The level is debug in verbose
// mode, warn otherwise.
//
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (o *RootOptions) config(log *slog.Logger) *netsim.Config {
	return &netsim.Config{
		Workers:    o.Workers,
		MaxDelta:   o.MaxDelta,
		Vectorized: o.Vectorized,
		Logger:     log,
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
