package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spboyer/gavel/internal/dataset"
	"github.com/spboyer/gavel/internal/labels"
	"github.com/spboyer/gavel/internal/sampling"
)

var mergeStrict bool

func newMergeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <true-labeled.csv> <false-labeled.csv>",
		Short: "Reconcile the raters' labels and merge them back for analysis",
		Long: `Merge reads the filled-in rater sheets (one label_<rater> column per
rater), reconciles each row to a single label by the configured precedence
order — distinct orders for the correct-answer and incorrect-answer sets —
and re-attaches the exam-type/question-type metadata from the sample exports
by sample ID.

Rows where no rater supplied a label are printed for manual follow-up; they
are still exported, with an empty label. With --strict the command exits
non-zero when such rows exist.`,
		Args: cobra.ExactArgs(2),
		RunE: mergeCommandE,
	}

	cmd.Flags().BoolVar(&mergeStrict, "strict", false, "Fail when any row has no label from any rater")

	return cmd
}

func mergeCommandE(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var allFlagged []string

	sets := []struct {
		name       string
		labeledCSV string
		samplesCSV string
		precedence []string
		outputCSV  string
	}{
		{"true", args[0], trueSamplesFile, cfg.Raters.TruePrecedence, "labeled_true.csv"},
		{"false", args[1], falseSamplesFile, cfg.Raters.FalsePrecedence, "labeled_false.csv"},
	}

	for _, set := range sets {
		rows, err := dataset.LoadCSV(set.labeledCSV)
		if err != nil {
			return fmt.Errorf("loading %s rater sheet: %w", set.name, err)
		}

		samples, err := sampling.Load(filepath.Join(cfg.Paths.Samples, set.samplesCSV))
		if err != nil {
			return fmt.Errorf("loading %s sample export (run `gavel sample` first): %w", set.name, err)
		}
		index, err := labels.IndexByID(samples)
		if err != nil {
			return err
		}

		reconciled, flagged := labels.ReconcileAll(rows, set.precedence)
		merged := labels.Merge(reconciled, index)

		outPath := filepath.Join(cfg.Paths.Labeled, set.outputCSV)
		if err := dataset.SaveCSV(outPath, labels.OutputColumns, merged); err != nil {
			return err
		}

		fmt.Fprintf(out, "%s set: %d rows reconciled -> %s\n", set.name, len(merged), outPath)
		if len(flagged) > 0 {
			fmt.Fprintf(out, "  %d rows have no label from any rater: %s\n",
				len(flagged), strings.Join(flagged, ", "))
			allFlagged = append(allFlagged, flagged...)
		}
	}

	if mergeStrict && len(allFlagged) > 0 {
		return &DataQualityError{
			Message: fmt.Sprintf("%d sample rows have no label from any rater", len(allFlagged)),
		}
	}
	return nil
}
