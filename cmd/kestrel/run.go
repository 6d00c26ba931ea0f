package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/kestrel/internal/engine"
	"github.com/kestrelworks/kestrel/internal/primitives"
	"github.com/kestrelworks/kestrel/pkg/log"
)

func newRunCmd() *cobra.Command {
	flags := &graphFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Expand, validate, and execute a cluster definition once",
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := flags.expand()
			if err != nil {
				return err
			}

			cat, err := primitives.CoreCatalog()
			if err != nil {
				return err
			}
			registries, err := primitives.CoreRegistries()
			if err != nil {
				return err
			}

			report, err := engine.Run(graph, cat, registries, engine.NewExecutionContext())
			if err != nil {
				return err
			}

			runnerLogger := log.WithComponent("runner")
			runnerLogger.Info().
				Int("outputs", len(report.Outputs)).
				Msg("pass complete")

			outputs := make(map[string]string, len(report.Outputs))
			for name, val := range report.Outputs {
				outputs[name] = val.String()
			}

			encoded, err := json.MarshalIndent(outputs, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
