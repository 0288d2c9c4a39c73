// Package sampling draws the balanced correct/incorrect samples that go out
// for human qualitative review, assigns stable sample identifiers, and
// handles the reliability carve-out and rater batching.
package sampling

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/spboyer/gavel/internal/dataset"
	"github.com/spboyer/gavel/internal/results"
)

// Default sampling parameters. The seeds are fixed so a re-run over the same
// input reproduces the same samples; they are properties of this
// implementation's generator (math/rand), not a replay of any other tool.
const (
	DefaultCorrectSampleSize = 30
	DefaultSampleSeed        = 42
	DefaultIDWidth           = 4
)

// Sample is a result record selected for human review, carrying a stable,
// globally unique identifier and empty label/comment cells awaiting
// annotation.
type Sample struct {
	ID      string
	Record  *results.Record
	Label   string
	Comment string
}

// Column names added by sampling to the result columns.
const (
	ColSampleID = "sample_id"
	ColLabel    = "label"
	ColComment  = "comment"
)

// Columns is the column order of exported sample CSVs: the sample ID first,
// then the combined-table columns, then the empty annotation cells.
var Columns = exportColumns()

func exportColumns() []string {
	cols := make([]string, 0, len(results.CombinedColumns)+3)
	cols = append(cols, ColSampleID)
	cols = append(cols, results.CombinedColumns...)
	return append(cols, ColLabel, ColComment)
}

// Options controls the balanced draw.
type Options struct {
	CorrectSampleSize int   // per-model cap on correct rows (0 = default)
	Seed              int64 // RNG seed for the correct-row draw
	IDWidth           int   // zero-pad width for sample IDs (0 = default)
}

func (o Options) withDefaults() Options {
	if o.CorrectSampleSize <= 0 {
		o.CorrectSampleSize = DefaultCorrectSampleSize
	}
	if o.IDWidth <= 0 {
		o.IDWidth = DefaultIDWidth
	}
	return o
}

// Balanced draws, for every model present in records, a seeded random sample
// of up to CorrectSampleSize correct rows (all of them when fewer exist) and
// takes ALL incorrect rows except those where the model declined to answer.
// Incorrect rows are the analytically interesting cases and are captured
// exhaustively. Models are visited in sorted order so the draw is
// deterministic given the seed and input ordering.
func Balanced(records []*results.Record, opts Options) (correct, incorrect []*results.Record) {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewSource(opts.Seed))

	byModel := make(map[string][]*results.Record)
	var models []string
	for _, rec := range records {
		if _, seen := byModel[rec.Model]; !seen {
			models = append(models, rec.Model)
		}
		byModel[rec.Model] = append(byModel[rec.Model], rec)
	}
	sort.Strings(models)

	for _, model := range models {
		var corr, incorr []*results.Record
		for _, rec := range byModel[model] {
			switch {
			case rec.Correct:
				corr = append(corr, rec)
			case rec.Skipped():
				// declined to answer: excluded from the incorrect set
			default:
				incorr = append(incorr, rec)
			}
		}

		correct = append(correct, drawWithoutReplacement(rng, corr, opts.CorrectSampleSize)...)
		incorrect = append(incorrect, incorr...)
	}

	sortForAssignment(correct)
	sortForAssignment(incorrect)
	return correct, incorrect
}

// drawWithoutReplacement picks n distinct records, preserving their relative
// input order. Returns all records when n >= len(recs).
func drawWithoutReplacement(rng *rand.Rand, recs []*results.Record, n int) []*results.Record {
	if n >= len(recs) {
		out := make([]*results.Record, len(recs))
		copy(out, recs)
		return out
	}
	idx := rng.Perm(len(recs))[:n]
	sort.Ints(idx)
	out := make([]*results.Record, 0, n)
	for _, i := range idx {
		out = append(out, recs[i])
	}
	return out
}

// sortForAssignment orders records by model, exam type, then question type
// descending, the fixed order in which sample IDs are handed out. The sort is
// stable so ties keep their input order.
func sortForAssignment(recs []*results.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Model != recs[j].Model {
			return recs[i].Model < recs[j].Model
		}
		if recs[i].ExamType != recs[j].ExamType {
			return recs[i].ExamType < recs[j].ExamType
		}
		return recs[i].QuestionType > recs[j].QuestionType
	})
}

// Assign hands out zero-padded sequential sample IDs across the
// correct-then-incorrect partitions: the correct set starts at 1 and the
// incorrect set continues where it left off, so IDs are globally unique.
func Assign(correct, incorrect []*results.Record, idWidth int) (trueSet, falseSet []Sample) {
	if idWidth <= 0 {
		idWidth = DefaultIDWidth
	}

	next := 1
	number := func(recs []*results.Record) []Sample {
		out := make([]Sample, 0, len(recs))
		for _, rec := range recs {
			out = append(out, Sample{
				ID:     fmt.Sprintf("%0*d", idWidth, next),
				Record: rec,
			})
			next++
		}
		return out
	}

	trueSet = number(correct)
	falseSet = number(incorrect)
	return trueSet, falseSet
}

// ToRow converts a sample to an export CSV row.
func (s Sample) ToRow() dataset.Row {
	row := s.Record.ToRow()
	row[ColSampleID] = s.ID
	row[ColLabel] = s.Label
	row[ColComment] = s.Comment
	return row
}

// FromRow rebuilds a sample from an exported (or labeled) CSV row.
func FromRow(row dataset.Row) (Sample, error) {
	if row[ColSampleID] == "" {
		return Sample{}, fmt.Errorf("sampling: row has no %s", ColSampleID)
	}
	rec, err := results.FromRow(row)
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		ID:      row[ColSampleID],
		Record:  rec,
		Label:   row[ColLabel],
		Comment: row[ColComment],
	}, nil
}

// Save writes samples to a CSV export.
func Save(path string, samples []Sample) error {
	rows := make([]dataset.Row, 0, len(samples))
	for _, s := range samples {
		rows = append(rows, s.ToRow())
	}
	return dataset.SaveCSV(path, Columns, rows)
}

// Load reads a sample export back in.
func Load(path string) ([]Sample, error) {
	rows, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}
	samples := make([]Sample, 0, len(rows))
	for _, row := range rows {
		s, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("sampling: %s: %w", path, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}
