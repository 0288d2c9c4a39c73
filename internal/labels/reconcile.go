// Package labels merges multiple raters' qualitative labels into a single
// reconciled label per sample, with a fixed precedence order deciding whose
// label wins when several raters reviewed the same row.
package labels

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spboyer/gavel/internal/dataset"
	"github.com/spboyer/gavel/internal/results"
	"github.com/spboyer/gavel/internal/sampling"
)

// Default rater precedence. The orders differ between the correct-answer and
// incorrect-answer tables because different raters led the review of each
// set. If the rater roster changes these lists change with it (they are
// overridable in .gavel.yaml).
var (
	DefaultTruePrecedence  = []string{"hyejin", "minsu", "jiwon"}
	DefaultFalsePrecedence = []string{"jiwon", "hyejin", "minsu"}
)

// Column names in reconciled output.
const (
	ColLabeledBy = "labeled_by"
)

// OutputColumns is the column order of the reconciled label export.
var OutputColumns = []string{
	sampling.ColSampleID,
	results.ColExamType, results.ColQuestionType, results.ColModel, results.ColCondition,
	results.ColQuestion, results.ColAnswer, results.ColGoldAnswer, results.ColConfidence,
	sampling.ColLabel, ColLabeledBy, sampling.ColComment,
}

// metadataColumns are re-attached from the sample export during Merge.
var metadataColumns = []string{
	results.ColExamType, results.ColQuestionType, results.ColModel, results.ColCondition,
	results.ColQuestion, results.ColAnswer, results.ColGoldAnswer, results.ColConfidence,
}

// RaterColumn returns the label column name a rater writes into.
func RaterColumn(rater string) string {
	return "label_" + rater
}

// Reconciled is one labeled sample row after precedence resolution.
type Reconciled struct {
	SampleID string
	Label    string
	Rater    string // rater whose label was taken; empty when all were missing
	Comment  string
	Row      dataset.Row // original labeled row, for passthrough columns
}

// Missing reports whether every rater's label was missing for this row.
func (r Reconciled) Missing() bool {
	return r.Label == ""
}

// Reconcile resolves one labeled row: it walks the precedence list and takes
// the first rater whose label cell is non-empty. Rows where every rater's
// cell is empty come back with an empty Label; callers must treat those as
// data-quality errors, not silently default them.
func Reconcile(row dataset.Row, precedence []string) Reconciled {
	rec := Reconciled{
		SampleID: row[sampling.ColSampleID],
		Comment:  row[sampling.ColComment],
		Row:      row,
	}
	for _, rater := range precedence {
		if v := strings.TrimSpace(row[RaterColumn(rater)]); v != "" {
			rec.Label = v
			rec.Rater = rater
			return rec
		}
	}
	return rec
}

// ReconcileAll resolves every row and returns the reconciled rows plus the
// sample IDs of rows where no rater supplied a label. Flagged rows are still
// returned (with an empty label) so they can be exported for follow-up.
func ReconcileAll(rows []dataset.Row, precedence []string) (reconciled []Reconciled, flagged []string) {
	if len(precedence) == 0 {
		precedence = DefaultTruePrecedence
	}
	for _, row := range rows {
		rec := Reconcile(row, precedence)
		if rec.Missing() {
			flagged = append(flagged, rec.SampleID)
		}
		reconciled = append(reconciled, rec)
	}
	return reconciled, flagged
}

// IndexByID builds a sample-ID lookup over a sample export, used to
// re-attach exam-type/question-type metadata that the rater sheets dropped.
func IndexByID(samples []sampling.Sample) (map[string]sampling.Sample, error) {
	index := make(map[string]sampling.Sample, len(samples))
	for _, s := range samples {
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("labels: duplicate sample id %s in sample export", s.ID)
		}
		index[s.ID] = s
	}
	return index, nil
}

// Merge attaches sample metadata to reconciled rows by sample ID and shapes
// them into the output table. Rows whose ID is absent from the index keep
// their own cells and are logged; that usually means the rater sheet and the
// sample export are from different runs.
func Merge(reconciled []Reconciled, index map[string]sampling.Sample) []dataset.Row {
	out := make([]dataset.Row, 0, len(reconciled))
	for _, rec := range reconciled {
		row := rec.Row.Clone()
		row[sampling.ColLabel] = rec.Label
		row[ColLabeledBy] = rec.Rater
		row[sampling.ColComment] = rec.Comment

		if s, ok := index[rec.SampleID]; ok {
			sampleRow := s.ToRow()
			for _, col := range metadataColumns {
				row[col] = sampleRow[col]
			}
		} else {
			slog.Warn("labeled row has no matching sample; metadata not re-attached", "sample_id", rec.SampleID)
		}
		out = append(out, row)
	}
	return out
}
