// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"fmt"
	"strings"

	"github.com/db47h/netsim/netlib"
	"github.com/spf13/cobra"
)

// PartInfo describes a library part in the JSON output of the parts command.
//
type PartInfo struct {
	Type    string   `json:"type"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

// NewPartsCommand creates the parts command.
//
func NewPartsCommand(opts *RootOptions) *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "parts",
		Short: "List library parts usable in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ps []PartInfo
			for _, n := range netlib.Names() {
				w := width
				switch n {
				case "halfadder", "fulladder":
					w = 1
				case "ornway", "andnway":
					if w < 2 {
						w = 2
					}
				}
				p, err := netlib.Lookup(n, w)
				if err != nil {
					return err
				}
				spec := p("").PartSpec
				ps = append(ps, PartInfo{n, spec.Inputs, spec.Outputs})
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), ps)
			}
			for _, p := range ps {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s in: %s  out: %s\n", p.Type, strings.Join(p.Inputs, ","), strings.Join(p.Outputs, ","))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 1, "part width used to list pins")
	return cmd
}
