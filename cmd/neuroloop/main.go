package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release build time.
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "neuroloop",
		Short: "neuroloop - a discrete-time neural simulator with per-tick recording",
		Long: `neuroloop runs small rate-coded neural networks in discrete ticks and
records named attributes from their layers into aligned columnar tables.

A YAML scenario defines the layers, projections, tick count, and which
attributes to record; the recorded tables are written as CSV.`,
	}

	// Global flags
	rootCmd.PersistentFlags().String("log-level", "", "Log verbosity: info, debug, or trace (overrides scenario)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newAttrsCmd(),
	)
	return rootCmd
}
