package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meteor-shower",
		Short: "meteor-shower - compare AI tools against capability cases",
		Long: `meteor-shower runs capability-validation cases against AI tools,
scores the outputs on accuracy, completeness, creativity, and efficiency,
and ranks the tools against each other.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newCompareCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newNewCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
