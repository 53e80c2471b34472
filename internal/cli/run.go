// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"github.com/db47h/netsim/internal/scenario"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
//
func NewRunCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>...",
		Short: "Run scenarios",
		Long: `Run scenario files and print the trace of every simulated frame,
followed by unmet expectations.

The command fails if any scenario has unmet expectations or if a frame
does not settle.

Examples:
  netsim run counter.yaml
  netsim run --workers 4 --format json adder.yaml counter.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args, cmd)
		},
	}
}

func runScenarios(opts *RootOptions, files []string, cmd *cobra.Command) error {
	log := opts.logger(cmd.ErrOrStderr())
	cfg := opts.config(log)

	var results []*scenario.Result
	failed := 0
	for _, f := range files {
		sc, err := scenario.Load(f)
		if err != nil {
			return err
		}
		log.Info("running scenario", "name", sc.Name, "file", f, "steps", len(sc.Steps))
		res, err := scenario.Run(sc, cfg)
		if err != nil {
			return err
		}
		if !res.Pass() {
			failed++
		}
		if opts.Format == "json" {
			results = append(results, res)
			continue
		}
		if err = scenario.WriteText(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	}
	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d scenarios failed", failed, len(files))
	}
	return nil
}
