package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/kestrel/internal/adapter"
	"github.com/kestrelworks/kestrel/internal/primitives"
	"github.com/kestrelworks/kestrel/internal/supervisor"
	"github.com/kestrelworks/kestrel/pkg/log"
)

func newCaptureCmd() *cobra.Command {
	flags := &graphFlags{}
	var (
		graphID    string
		events     int
		spacing    time.Duration
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Supervise a sequence of tick events and write the capture bundle",
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

			runtime := adapter.NewRuntimeHandle(graph, cat, registries)
			session := supervisor.NewCapturingSession(
				adapter.GraphID(graphID),
				supervisor.Constraints{},
				supervisor.NewMemoryDecisionLog(),
				runtime,
			)

			logger := log.WithComponent("capture")
			for i := 0; i < events; i++ {
				at := adapter.EventTime(time.Duration(i) * spacing)
				event := adapter.MechanicalAt(adapter.NewEventID(), adapter.KindTick, at)
				session.OnEvent(event)
				logger.Debug().Str("event_id", string(event.EventID)).Msg("event supervised")
			}

			bundle := session.Bundle()
			encoded, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
				return err
			}

			logger.Info().
				Str("graph_id", graphID).
				Int("events", len(bundle.Events)).
				Str("path", outputPath).
				Msg("bundle written")
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&graphID, "graph-id", "graph", "Graph identifier recorded in the bundle")
	cmd.Flags().IntVarP(&events, "events", "n", 1, "Number of tick events to supervise")
	cmd.Flags().DurationVar(&spacing, "spacing", time.Second, "Logical spacing between events")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "bundle.json", "Bundle output path")
	return cmd
}
