package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/kestrel/internal/engine"
	"github.com/kestrelworks/kestrel/internal/primitives"
)

func newValidateCmd() *cobra.Command {
	flags := &graphFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Expand and validate a cluster definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			graph, err := flags.expand()
			if err != nil {
				return err
			}

			cat, err := primitives.CoreCatalog()
			if err != nil {
				return err
			}

			validated, err := engine.Validate(graph, cat)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d nodes, %d edges\n", len(validated.Nodes), len(validated.Edges))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
