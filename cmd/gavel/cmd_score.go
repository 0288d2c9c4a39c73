package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/gavel/internal/dataset"
	"github.com/spboyer/gavel/internal/results"
	"github.com/spboyer/gavel/internal/scoring"
)

func newScoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Compute accuracy summaries over the combined results",
		Long: `Score reads the combined results table and prints accuracy per model,
condition, and exam section, mean confidence for correct vs incorrect
answers, and a seeded bootstrap confidence interval on each model's overall
accuracy. The same numbers are written to the scores CSV.`,
		Args: cobra.NoArgs,
		RunE: scoreCommandE,
	}
}

func scoreCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := results.LoadCombined(cfg.Paths.Combined)
	if err != nil {
		return fmt.Errorf("loading combined results (run `gavel collect` first): %w", err)
	}

	groups := scoring.Summarize(records)
	models := scoring.SummarizeModels(records, cfg.Scoring.BootstrapSeed)

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, "No results to score.")
		return nil
	}

	printGroupTable(out, groups)
	fmt.Fprintln(out)
	printModelTable(out, models)

	rows := scoring.ToRows(groups)
	if err := dataset.SaveCSV(cfg.Paths.Scores, scoring.ScoreColumns, rows); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nScore table: %s\n", cfg.Paths.Scores)
	return nil
}
