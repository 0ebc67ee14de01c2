package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zoocore/internal/scenario"
)

func newCheckCmd(a *app) *cobra.Command {
	var path, animal, enclosure string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a scenario animal fits an enclosure without admitting it",
		Long: `Sets up the scenario's enclosures and animals, then evaluates the admission
rules for one animal and one enclosure. No steps are replayed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc, err := a.loadScenario(path)
			if err != nil {
				return err
			}
			w, err := a.wire(cmd.OutOrStdout(), nil)
			if err != nil {
				return err
			}
			fx, err := scenario.NewRunner(w.svc).Setup(cmd.Context(), sc)
			if err != nil {
				return err
			}
			target, ok := fx.Animals[animal]
			if !ok {
				return fmt.Errorf("scenario %s has no animal %q", sc.Name, animal)
			}
			pen, ok := fx.Enclosures[enclosure]
			if !ok {
				return fmt.Errorf("scenario %s has no enclosure %q", sc.Name, enclosure)
			}
			outcome, err := w.svc.CheckAdmission(cmd.Context(), target, pen.ID())
			if err != nil {
				return err
			}
			a.logger.Debug("admission checked", zap.String("animal", animal), zap.String("enclosure", enclosure), zap.Bool("admissible", outcome.Admissible()))
			if outcome.Admissible() {
				w.narrator.Admissible(*target)
				return nil
			}
			w.narrator.Rejected(*target, outcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "scenario", "", "Scenario YAML file (default: built-in demonstration)")
	cmd.Flags().StringVar(&animal, "animal", "", "Animal name from the scenario")
	cmd.Flags().StringVar(&enclosure, "enclosure", "", "Enclosure key from the scenario")
	_ = cmd.MarkFlagRequired("animal")
	_ = cmd.MarkFlagRequired("enclosure")
	return cmd
}
