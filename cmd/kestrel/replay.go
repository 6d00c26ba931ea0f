package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/kestrel/internal/adapter"
	"github.com/kestrelworks/kestrel/internal/supervisor"
	"github.com/kestrelworks/kestrel/pkg/log"
)

func newReplayCmd() *cobra.Command {
	var bundlePath string

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a capture bundle and print the invocation records",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(bundlePath)
			if err != nil {
				return err
			}

			var bundle supervisor.CaptureBundle
			if err := json.Unmarshal(data, &bundle); err != nil {
				return err
			}

			for _, record := range bundle.Events {
				if !record.ValidateHash() {
					return fmt.Errorf("payload hash mismatch for event %q", record.EventID)
				}
			}

			// Policy decisions (defers, scheduling, episode ids) replay
			// exactly from the bundle; invoked episodes run against a
			// completing stand-in runtime, so their terminations and
			// retry counts reflect that runtime, not the captured one.
			runtime := adapter.NewFaultRuntimeHandle(adapter.Completed())
			records := supervisor.Replay(&bundle, runtime)

			replayLogger := log.WithComponent("replay")
			replayLogger.Info().
				Str("graph_id", string(bundle.GraphID)).
				Int("events", len(bundle.Events)).
				Int("records", len(records)).
				Msg("replay complete")

			encoded, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	cmd.Flags().StringVarP(&bundlePath, "bundle", "b", "", "Capture bundle document")
	_ = cmd.MarkFlagRequired("bundle")
	return cmd
}
