// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/db47h/netsim"
	"github.com/db47h/netsim/internal/scenario"
	"github.com/spf13/cobra"
)

// ScheduleInfo is the JSON output of the sched command.
//
type ScheduleInfo struct {
	Module string     `json:"module"`
	Cells  int        `json:"cells"`
	Wires  int        `json:"wires"`
	Levels [][]string `json:"levels"`
}

// NewSchedCommand creates the sched command.
//
func NewSchedCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sched <scenario.yaml>",
		Short: "Print the update schedule of a scenario module",
		Long: `Build the module described in a scenario file and print its cell
update order, grouped by topological level. Cells in the same level are
independent and may be evaluated in parallel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printSchedule(opts, args[0], cmd)
		},
	}
}

func printSchedule(opts *RootOptions, file string, cmd *cobra.Command) error {
	sc, err := scenario.Load(file)
	if err != nil {
		return err
	}
	m, err := sc.Module()
	if err != nil {
		return err
	}
	s, err := netsim.NewSchedule(m)
	if err != nil {
		return err
	}
	cells := m.Cells()
	info := ScheduleInfo{Module: m.Name(), Cells: len(cells), Wires: s.Wires, Levels: [][]string{}}
	for _, l := range s.Levels() {
		ns := make([]string, len(l))
		for i, c := range l {
			ns[i] = cells[c].Name()
		}
		info.Levels = append(info.Levels, ns)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), info)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "module %s: %d cells, %d wires\n", info.Module, info.Cells, info.Wires)
	for i, l := range info.Levels {
		fmt.Fprintf(w, "%d: %s\n", i, strings.Join(l, " "))
	}
	return nil
}
