package main

import (
	"github.com/spf13/cobra"

	"github.com/kestrelworks/kestrel/pkg/log"
)

type rootFlags struct {
	logLevel string
	jsonLogs bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "kestrel",
		Short:         "Kestrel compiles and runs deterministic event-driven graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Init(log.Config{
				Level:      log.Level(flags.logLevel),
				JSONOutput: flags.jsonLogs,
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Logging threshold (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.jsonLogs, "json-logs", false, "Emit logs as JSON")

	cmd.AddCommand(newExpandCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCaptureCmd())
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
