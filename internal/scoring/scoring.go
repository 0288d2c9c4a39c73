// Package scoring computes the quantitative summary tables: per-group
// accuracy over the combined results, confidence means for correct vs
// incorrect answers, and bootstrap confidence intervals on per-model
// accuracy.
package scoring

import (
	"sort"
	"strconv"

	"github.com/spboyer/gavel/internal/dataset"
	"github.com/spboyer/gavel/internal/results"
	"github.com/spboyer/gavel/internal/statistics"
)

// DefaultBootstrapSeed fixes the resampling RNG so score reports reproduce.
const DefaultBootstrapSeed = 42

// GroupSummary is the accuracy breakdown for one model under one condition
// in one exam section. Accuracy is over answered questions; skipped
// questions are counted separately.
type GroupSummary struct {
	Model     string            `json:"model"`
	Condition results.Condition `json:"condition"`
	ExamType  results.ExamType  `json:"exam_type"`

	Total    int     `json:"total"`
	Answered int     `json:"answered"`
	Correct  int     `json:"correct"`
	Skipped  int     `json:"skipped"`
	Accuracy float64 `json:"accuracy"`

	MeanConfidenceCorrect   *float64 `json:"mean_confidence_correct,omitempty"`
	MeanConfidenceIncorrect *float64 `json:"mean_confidence_incorrect,omitempty"`
}

// ModelSummary is the overall accuracy for one model across all conditions
// and sections, with a bootstrap confidence interval.
type ModelSummary struct {
	Model    string                        `json:"model"`
	Total    int                           `json:"total"`
	Answered int                           `json:"answered"`
	Correct  int                           `json:"correct"`
	Accuracy float64                       `json:"accuracy"`
	CI       statistics.ConfidenceInterval `json:"ci"`
}

type groupKey struct {
	model     string
	condition results.Condition
	examType  results.ExamType
}

// Summarize computes per-group accuracy breakdowns, sorted by model,
// condition, then exam type.
func Summarize(records []*results.Record) []GroupSummary {
	groups := make(map[groupKey][]*results.Record)
	for _, rec := range records {
		k := groupKey{rec.Model, rec.Condition, rec.ExamType}
		groups[k] = append(groups[k], rec)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].model != keys[j].model {
			return keys[i].model < keys[j].model
		}
		if keys[i].condition != keys[j].condition {
			return keys[i].condition < keys[j].condition
		}
		return keys[i].examType < keys[j].examType
	})

	summaries := make([]GroupSummary, 0, len(keys))
	for _, k := range keys {
		recs := groups[k]
		s := GroupSummary{Model: k.model, Condition: k.condition, ExamType: k.examType, Total: len(recs)}

		var confCorrect, confIncorrect []*float64
		for _, rec := range recs {
			if rec.Skipped() {
				s.Skipped++
				continue
			}
			s.Answered++
			if rec.Correct {
				s.Correct++
				confCorrect = append(confCorrect, rec.Confidence)
			} else {
				confIncorrect = append(confIncorrect, rec.Confidence)
			}
		}
		if s.Answered > 0 {
			s.Accuracy = float64(s.Correct) / float64(s.Answered)
		}
		s.MeanConfidenceCorrect = statistics.MeanOf(confCorrect)
		s.MeanConfidenceIncorrect = statistics.MeanOf(confIncorrect)
		summaries = append(summaries, s)
	}
	return summaries
}

// SummarizeModels computes per-model overall accuracy with a 95% bootstrap
// confidence interval, sorted by model.
func SummarizeModels(records []*results.Record, seed int64) []ModelSummary {
	byModel := make(map[string][]*results.Record)
	var models []string
	for _, rec := range records {
		if _, seen := byModel[rec.Model]; !seen {
			models = append(models, rec.Model)
		}
		byModel[rec.Model] = append(byModel[rec.Model], rec)
	}
	sort.Strings(models)

	summaries := make([]ModelSummary, 0, len(models))
	for _, model := range models {
		recs := byModel[model]
		s := ModelSummary{Model: model, Total: len(recs)}

		var scores []float64
		for _, rec := range recs {
			if rec.Skipped() {
				continue
			}
			s.Answered++
			if rec.Correct {
				s.Correct++
				scores = append(scores, 1)
			} else {
				scores = append(scores, 0)
			}
		}
		if s.Answered > 0 {
			s.Accuracy = float64(s.Correct) / float64(s.Answered)
		}
		s.CI = statistics.BootstrapCI(scores, 0.95, seed)
		summaries = append(summaries, s)
	}
	return summaries
}

// ScoreColumns is the column order of the exported score table.
var ScoreColumns = []string{
	results.ColModel, results.ColCondition, results.ColExamType,
	"total", "answered", "correct", "skipped", "accuracy",
	"mean_confidence_correct", "mean_confidence_incorrect",
}

// ToRows shapes group summaries into CSV rows.
func ToRows(summaries []GroupSummary) []dataset.Row {
	rows := make([]dataset.Row, 0, len(summaries))
	for _, s := range summaries {
		row := dataset.Row{
			results.ColModel:     s.Model,
			results.ColCondition: string(s.Condition),
			results.ColExamType:  string(s.ExamType),
			"total":              strconv.Itoa(s.Total),
			"answered":           strconv.Itoa(s.Answered),
			"correct":            strconv.Itoa(s.Correct),
			"skipped":            strconv.Itoa(s.Skipped),
			"accuracy":           strconv.FormatFloat(s.Accuracy, 'f', 4, 64),
		}
		if s.MeanConfidenceCorrect != nil {
			row["mean_confidence_correct"] = strconv.FormatFloat(*s.MeanConfidenceCorrect, 'f', 2, 64)
		}
		if s.MeanConfidenceIncorrect != nil {
			row["mean_confidence_incorrect"] = strconv.FormatFloat(*s.MeanConfidenceIncorrect, 'f', 2, 64)
		}
		rows = append(rows, row)
	}
	return rows
}
