// Package results models one exam question answered by one model under one
// test condition, and handles normalization of the raw answer and confidence
// fields coming out of the test-execution stage.
package results

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-viper/mapstructure/v2"

	"github.com/spboyer/gavel/internal/dataset"
)

// ExamType identifies the exam section a question belongs to.
type ExamType string

const (
	// ExamPolicy is the jurisprudence ("policy") section.
	ExamPolicy ExamType = "policy"
	// ExamComprehensive is the applied-knowledge section.
	ExamComprehensive ExamType = "comprehensive"
)

// Condition is the exam-taking protocol a model was given.
type Condition string

const (
	ConditionForced      Condition = "forced"       // must answer every question
	ConditionSkip        Condition = "skip"         // may decline to answer
	ConditionOptionsOnly Condition = "options-only" // sees only the options
)

// SkipMarker is the token a model emits when it declines to answer under the
// skip condition. Matched against the normalized answer.
const SkipMarker = "SKIP"

// Column names of the combined results table. Raw per-model files carry the
// Col* answer/confidence/text columns; the filename-derived columns are added
// during collection.
const (
	ColQuestionID       = "question_id"
	ColExamType         = "exam_type"
	ColQuestionType     = "question_type"
	ColModel            = "model"
	ColCondition        = "condition"
	ColQuestion         = "question"
	ColOptions          = "options"
	ColAnswer           = "model_answer"
	ColGoldAnswer       = "correct_answer"
	ColConfidence       = "confidence"
	ColExplanation      = "explanation"
	ColModelExplanation = "model_explanation"
	ColCorrect          = "is_correct"
)

// CombinedColumns is the column order of the combined results table.
var CombinedColumns = []string{
	ColQuestionID, ColExamType, ColQuestionType, ColModel, ColCondition,
	ColQuestion, ColOptions, ColAnswer, ColGoldAnswer, ColConfidence,
	ColExplanation, ColModelExplanation, ColCorrect,
}

// Record is one exam question answered by one model under one condition.
// Answer and GoldAnswer hold normalized values (uppercase letters only);
// Confidence is nil when the raw value was missing or unparseable.
type Record struct {
	QuestionID       string    `mapstructure:"question_id"`
	ExamType         ExamType  `mapstructure:"exam_type"`
	QuestionType     string    `mapstructure:"question_type"`
	Model            string    `mapstructure:"model"`
	Condition        Condition `mapstructure:"condition"`
	Question         string    `mapstructure:"question"`
	Options          string    `mapstructure:"options"`
	Answer           string    `mapstructure:"model_answer"`
	GoldAnswer       string    `mapstructure:"correct_answer"`
	Explanation      string    `mapstructure:"explanation"`
	ModelExplanation string    `mapstructure:"model_explanation"`

	Confidence *float64 `mapstructure:"-"`
	Correct    bool     `mapstructure:"-"`
}

// CleanAnswer normalizes an answer string to an uppercase-letter-only token:
// "A, B, C" becomes "ABC". Missing (empty) values pass through unchanged.
func CleanAnswer(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	return b.String()
}

// CleanConfidence strips everything but digits, '.' and '-' from a raw
// confidence value and parses the remainder as a float. Returns nil on any
// parse failure rather than an error; a bad confidence cell must never abort
// the batch.
func CleanConfidence(s string) *float64 {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// FromRow decodes a CSV row into a Record, normalizing the answer fields and
// deriving correctness. The row may be a raw per-model row (no exam_type etc;
// callers fill those from the filename) or a combined-table row.
func FromRow(row dataset.Row) (*Record, error) {
	var rec Record
	if err := mapstructure.Decode(map[string]string(row), &rec); err != nil {
		return nil, fmt.Errorf("results: decode row: %w", err)
	}

	rec.Answer = CleanAnswer(rec.Answer)
	rec.GoldAnswer = CleanAnswer(rec.GoldAnswer)
	rec.Confidence = CleanConfidence(row[ColConfidence])
	rec.Correct = rec.Answer != "" && rec.Answer == rec.GoldAnswer
	return &rec, nil
}

// ToRow converts a Record to a CSV row using the combined-table columns.
func (r *Record) ToRow() dataset.Row {
	row := dataset.Row{
		ColQuestionID:       r.QuestionID,
		ColExamType:         string(r.ExamType),
		ColQuestionType:     r.QuestionType,
		ColModel:            r.Model,
		ColCondition:        string(r.Condition),
		ColQuestion:         r.Question,
		ColOptions:          r.Options,
		ColAnswer:           r.Answer,
		ColGoldAnswer:       r.GoldAnswer,
		ColExplanation:      r.Explanation,
		ColModelExplanation: r.ModelExplanation,
		ColCorrect:          strconv.FormatBool(r.Correct),
	}
	if r.Confidence != nil {
		row[ColConfidence] = strconv.FormatFloat(*r.Confidence, 'f', -1, 64)
	} else {
		row[ColConfidence] = ""
	}
	return row
}

// Skipped reports whether the model explicitly declined to answer.
func (r *Record) Skipped() bool {
	return strings.Contains(r.Answer, SkipMarker)
}

// ParseExamType validates an exam type token.
func ParseExamType(s string) (ExamType, error) {
	switch ExamType(s) {
	case ExamPolicy, ExamComprehensive:
		return ExamType(s), nil
	default:
		return "", fmt.Errorf("invalid exam type %q: must be %s or %s", s, ExamPolicy, ExamComprehensive)
	}
}

// ParseCondition validates a condition token.
func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case ConditionForced, ConditionSkip, ConditionOptionsOnly:
		return Condition(s), nil
	default:
		return "", fmt.Errorf("invalid condition %q: must be %s, %s, or %s", s, ConditionForced, ConditionSkip, ConditionOptionsOnly)
	}
}
