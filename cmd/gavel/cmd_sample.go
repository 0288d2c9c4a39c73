package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/gavel/internal/manifest"
	"github.com/spboyer/gavel/internal/results"
	"github.com/spboyer/gavel/internal/sampling"
)

// Sample export filenames under the samples directory.
const (
	trueSamplesFile  = "true_samples.csv"
	falseSamplesFile = "false_samples.csv"
)

func newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Draw the balanced correct/incorrect samples for human review",
		Long: `Sample draws, for every model, a seeded random sample of correct answers
(30 by default, or all when fewer exist) and takes every incorrect answer
except the ones where the model declined to answer. The combined draw is
sorted by model, exam type, and question type (descending), then zero-padded
sample IDs are assigned sequentially across the correct-then-incorrect
partitions.

Given the same combined table and seed, the draw reproduces exactly.`,
		Args: cobra.NoArgs,
		RunE: sampleCommandE,
	}
}

func sampleCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := results.LoadCombined(cfg.Paths.Combined)
	if err != nil {
		return fmt.Errorf("loading combined results (run `gavel collect` first): %w", err)
	}

	correct, incorrect := sampling.Balanced(records, sampling.Options{
		CorrectSampleSize: cfg.Sampling.CorrectSampleSize,
		Seed:              cfg.Sampling.SampleSeed,
	})
	trueSet, falseSet := sampling.Assign(correct, incorrect, cfg.Sampling.IDWidth)

	truePath := filepath.Join(cfg.Paths.Samples, trueSamplesFile)
	falsePath := filepath.Join(cfg.Paths.Samples, falseSamplesFile)
	if err := sampling.Save(truePath, trueSet); err != nil {
		return err
	}
	if err := sampling.Save(falsePath, falseSet); err != nil {
		return err
	}

	m := manifest.New("sample")
	m.SetSeed("sample_seed", cfg.Sampling.SampleSeed)
	m.AddInput(cfg.Paths.Combined, len(records))
	m.AddOutput(truePath, len(trueSet))
	m.AddOutput(falsePath, len(falseSet))
	if err := m.Save(filepath.Join(cfg.Paths.Samples, "manifest.json")); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Sampled %d correct rows -> %s\n", len(trueSet), truePath)
	fmt.Fprintf(out, "Took all %d incorrect rows -> %s\n", len(falseSet), falsePath)
	return nil
}
