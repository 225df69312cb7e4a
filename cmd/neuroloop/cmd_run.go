package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/synaptiq/neuroloop/internal/config"
	"github.com/synaptiq/neuroloop/internal/logging"
	"github.com/synaptiq/neuroloop/internal/network"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and write the recorded tables as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			outPath, _ := cmd.Flags().GetString("out")
			ticksOverride, _ := cmd.Flags().GetInt("ticks")
			traceDir, _ := cmd.Flags().GetString("trace-dir")
			levelOverride, _ := cmd.Flags().GetString("log-level")

			scenario := config.Default()
			if configPath != "" {
				var err error
				scenario, err = config.Load(configPath)
				if err != nil {
					return err
				}
			}
			if ticksOverride > 0 {
				scenario.Ticks = ticksOverride
			}

			level := scenario.Logging.Level
			if levelOverride != "" {
				level = levelOverride
			}
			logger := logging.NewLogger(level, cmd.ErrOrStderr())

			var out io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				out = f
			}

			tracer := logging.NewTraceLogger(traceDir, level)
			defer tracer.Close()

			return runScenario(scenario, logger, tracer, out)
		},
	}

	cmd.Flags().StringP("config", "c", "", "Scenario YAML file (omit for the built-in default)")
	cmd.Flags().StringP("out", "o", "", "Output CSV file (default stdout)")
	cmd.Flags().Int("ticks", 0, "Override the scenario's tick count")
	cmd.Flags().String("trace-dir", ".neuroloop", "Directory for the per-tick trace log at debug level")
	return cmd
}

// runScenario builds the net, drives the tick loop, and writes each watched
// layer's table. Tick traces carry the layer's aggregate activation.
func runScenario(scenario *config.Scenario, logger *slog.Logger, tracer *logging.TraceLogger, out io.Writer) error {
	n, err := network.FromScenario(scenario)
	if err != nil {
		return err
	}
	n.SetLogger(logger)
	logger.Info("scenario loaded", "name", scenario.Name, "layers", len(scenario.Layers), "ticks", scenario.Ticks)

	for i := 0; i < scenario.Ticks; i++ {
		if err := n.Cycle(); err != nil {
			return err
		}
		for _, name := range n.Watched() {
			l, _ := n.Layer(name)
			tracer.Tick(n.Tick(), name, map[string]any{
				"avg_act": l.AvgAct(),
				"gi":      l.Gi(),
			})
		}
	}
	logger.Debug("run complete", "ticks", n.Tick())

	for _, name := range n.Watched() {
		tbl, err := n.Logs(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "# layer %s (%d rows)\n", name, tbl.NumRows()); err != nil {
			return err
		}
		if err := tbl.WriteCSV(out); err != nil {
			return fmt.Errorf("layer %s: %w", name, err)
		}
	}
	return nil
}
