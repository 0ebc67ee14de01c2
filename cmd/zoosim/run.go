package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zoocore/internal/scenario"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		path         string
		trace        bool
		printMetrics bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a scenario and narrate every step",
		Long: `Replays a YAML scenario (or the built-in savanna and forest demonstration)
against a fresh zoo and narrates admissions, rejections and the food total.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.loadScenario(path)
			if err != nil {
				return err
			}
			var traceOut io.Writer
			if trace {
				traceOut = cmd.ErrOrStderr()
			}
			w, err := a.wire(cmd.OutOrStdout(), traceOut)
			if err != nil {
				return err
			}
			a.logger.Debug("running scenario", zap.String("scenario", sc.Name), zap.Int("steps", len(sc.Steps)))
			summary, err := scenario.NewRunner(w.svc).Run(cmd.Context(), sc)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", sc.Name, err)
			}
			a.logger.Info("scenario finished",
				zap.String("scenario", summary.Name),
				zap.Int("steps", len(summary.Steps)),
				zap.Float64("total_food", summary.TotalFood))
			if printMetrics {
				return w.dumpMetrics(cmd.ErrOrStderr())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "scenario", "", "Scenario YAML file (default: built-in demonstration)")
	cmd.Flags().BoolVar(&trace, "trace", false, "Write JSON trace spans to stderr")
	cmd.Flags().BoolVar(&printMetrics, "print-metrics", false, "Print recorded metrics to stderr after the run")
	return cmd
}
