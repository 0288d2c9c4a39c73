package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

// projectDir is where the project config and relative paths are anchored.
var projectDir string

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gavel",
		Short: "Gavel - pipeline for evaluating model answers against a licensing-exam key",
		Long: `Gavel processes licensing-exam result files produced by model test runs.

It collects per-model result CSVs, normalizes answers and confidence values,
scores models quantitatively, draws balanced samples for human qualitative
review, and merges the raters' labels back in for analysis.

The stages run in order: collect, score, sample, batch, merge.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&projectDir, "dir", "C", ".", "Project directory containing .gavel.yaml and data paths")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newCollectCommand())
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newSampleCommand())
	cmd.AddCommand(newBatchCommand())
	cmd.AddCommand(newMergeCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
