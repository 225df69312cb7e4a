package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synaptiq/neuroloop/internal/layer"
)

func newAttrsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attrs",
		Short: "List the attribute names a layer can record",
		Long: `attrs prints every attribute name usable in a scenario's records block.

Simple attributes produce one column named after themselves; unit_ attributes
expand to one column per unit (unit0_act, unit1_act, ...).`,
		Run: func(cmd *cobra.Command, args []string) {
			for _, attr := range layer.LoggableAttrs() {
				fmt.Fprintln(cmd.OutOrStdout(), attr)
			}
		},
	}
}
