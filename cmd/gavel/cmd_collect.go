package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/gavel/internal/manifest"
	"github.com/spboyer/gavel/internal/projectconfig"
	"github.com/spboyer/gavel/internal/results"
)

func newCollectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Collect raw result CSVs into the combined cleaned table",
		Long: `Collect walks the results directory for raw per-model result CSVs, parses
the exam type, model, condition, and question type out of each filename,
normalizes the answer and confidence columns, derives correctness, and writes
everything as one combined table.

Files whose names do not follow the <examtype>_<model>_<condition>_<qtype>.csv
convention are skipped with a warning.`,
		Args: cobra.NoArgs,
		RunE: collectCommandE,
	}
}

// loadConfig loads .gavel.yaml from the project directory and anchors every
// relative path to it.
func loadConfig() (*projectconfig.ProjectConfig, error) {
	cfg, err := projectconfig.Load(projectDir)
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(projectDir)
	return cfg, nil
}

func collectCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := results.Discover(cfg.Paths.Results)
	if err != nil {
		return err
	}

	records, counts := results.Collect(files)
	if err := results.SaveCombined(cfg.Paths.Combined, records); err != nil {
		return err
	}

	m := manifest.New("collect")
	for _, c := range counts {
		m.AddInput(c.Path, c.Rows)
	}
	m.AddOutput(cfg.Paths.Combined, len(records))
	if err := m.Save(cfg.Paths.Combined + ".manifest.json"); err != nil {
		return err
	}

	models := map[string]bool{}
	for _, rec := range records {
		models[rec.Model] = true
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Collected %d rows from %d files (%d models)\n", len(records), len(counts), len(models))
	fmt.Fprintf(out, "Combined table: %s\n", cfg.Paths.Combined)
	return nil
}
