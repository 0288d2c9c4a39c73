package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spboyer/gavel/internal/results"
	"github.com/spboyer/gavel/internal/scoring"
	"github.com/spboyer/gavel/internal/statistics"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", padRight("abc", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5))
	// wide runes count by display width, not rune count
	assert.Equal(t, "한글 ", padRight("한글", 5))
}

func TestPrintGroupTable(t *testing.T) {
	conf := 82.5
	var buf bytes.Buffer
	printGroupTable(&buf, []scoring.GroupSummary{
		{
			Model: "gpt-4o", Condition: results.ConditionForced, ExamType: results.ExamPolicy,
			Total: 40, Answered: 40, Correct: 30, Accuracy: 0.75,
			MeanConfidenceCorrect: &conf,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "MODEL")
	assert.Contains(t, out, "gpt-4o")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "82.5")
	assert.Contains(t, out, "-", "missing confidence renders as a dash")
}

func TestPrintModelTable(t *testing.T) {
	var buf bytes.Buffer
	printModelTable(&buf, []scoring.ModelSummary{
		{
			Model: "gemini", Total: 100, Answered: 95, Correct: 60, Accuracy: 60.0 / 95.0,
			CI: statistics.ConfidenceInterval{Lower: 0.53, Upper: 0.72},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "gemini")
	assert.Contains(t, out, "95% CI")
	assert.Contains(t, out, "53.0%")
	assert.Contains(t, out, "72.0%")
}
