package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spboyer/gavel/internal/manifest"
	"github.com/spboyer/gavel/internal/sampling"
)

func newBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch",
		Short: "Carve out the reliability subsets and split the rest into rater batches",
		Long: `Batch takes each exported sample set, sets aside a seeded reliability
subset (30 rows by default) that every rater labels independently, shuffles
the remainder with a separate seed, and splits it into fixed-size batches
(100 rows by default) for distribution to raters.

The reliability subset is excluded from the batches by sample ID, so the two
never overlap.`,
		Args: cobra.NoArgs,
		RunE: batchCommandE,
	}
}

func batchCommandE(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m := manifest.New("batch")
	m.SetSeed("reliability_seed", cfg.Sampling.ReliabilitySeed)
	m.SetSeed("shuffle_seed", cfg.Sampling.ShuffleSeed)

	out := cmd.OutOrStdout()
	for _, set := range []struct {
		name string
		file string
	}{
		{"true", trueSamplesFile},
		{"false", falseSamplesFile},
	} {
		inPath := filepath.Join(cfg.Paths.Samples, set.file)
		samples, err := sampling.Load(inPath)
		if err != nil {
			return fmt.Errorf("loading %s samples (run `gavel sample` first): %w", set.name, err)
		}
		m.AddInput(inPath, len(samples))

		reliability, remainder := sampling.CarveReliability(samples, cfg.Sampling.ReliabilitySize, cfg.Sampling.ReliabilitySeed)
		shuffled := sampling.Shuffle(remainder, cfg.Sampling.ShuffleSeed)
		batches := sampling.Partition(shuffled, cfg.Sampling.BatchSize)

		relPath := filepath.Join(cfg.Paths.Samples, fmt.Sprintf("reliability_%s.csv", set.name))
		if err := sampling.Save(relPath, reliability); err != nil {
			return err
		}
		m.AddOutput(relPath, len(reliability))

		for i, batch := range batches {
			batchPath := filepath.Join(cfg.Paths.Samples, "batches", fmt.Sprintf("%s_batch_%02d.csv", set.name, i+1))
			if err := sampling.Save(batchPath, batch); err != nil {
				return err
			}
			m.AddOutput(batchPath, len(batch))
		}

		fmt.Fprintf(out, "%s set: %d reliability rows, %d batches from %d remaining rows\n",
			set.name, len(reliability), len(batches), len(remainder))
	}

	return m.Save(filepath.Join(cfg.Paths.Samples, "batches", "manifest.json"))
}
