package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/spboyer/gavel/internal/scoring"
)

// padRight pads s with spaces so its terminal display width reaches width.
// Display width, not len: model and question-type names can carry wide runes.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// modelColumnWidth sizes the model column to the widest name, clamped so a
// long name cannot push the numbers off a narrow terminal.
func modelColumnWidth(names []string, out io.Writer) int {
	width := len("MODEL")
	for _, name := range names {
		if w := runewidth.StringWidth(name); w > width {
			width = w
		}
	}

	max := 48
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 60 {
			max = cols - 54 // room for the numeric columns
		}
	}
	if width > max {
		width = max
	}
	return width
}

func fmtConfidence(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}

// printGroupTable writes the per-model/condition/exam-type accuracy
// breakdown.
func printGroupTable(out io.Writer, summaries []scoring.GroupSummary) {
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.Model)
	}
	mw := modelColumnWidth(names, out)

	fmt.Fprintf(out, "%s  %-13s %-14s %6s %6s %5s %9s %9s %9s\n",
		padRight("MODEL", mw), "CONDITION", "EXAM", "N", "OK", "SKIP", "ACC", "CONF+", "CONF-")
	for _, s := range summaries {
		fmt.Fprintf(out, "%s  %-13s %-14s %6d %6d %5d %8.1f%% %9s %9s\n",
			padRight(runewidth.Truncate(s.Model, mw, "…"), mw),
			string(s.Condition), string(s.ExamType),
			s.Total, s.Correct, s.Skipped, s.Accuracy*100,
			fmtConfidence(s.MeanConfidenceCorrect), fmtConfidence(s.MeanConfidenceIncorrect))
	}
}

// printModelTable writes the overall per-model accuracy with bootstrap CIs.
func printModelTable(out io.Writer, summaries []scoring.ModelSummary) {
	names := make([]string, 0, len(summaries))
	for _, s := range summaries {
		names = append(names, s.Model)
	}
	mw := modelColumnWidth(names, out)

	fmt.Fprintf(out, "%s  %6s %6s %9s %18s\n", padRight("MODEL", mw), "N", "OK", "ACC", "95% CI")
	for _, s := range summaries {
		fmt.Fprintf(out, "%s  %6d %6d %8.1f%% [%6.1f%%, %6.1f%%]\n",
			padRight(runewidth.Truncate(s.Model, mw, "…"), mw),
			s.Total, s.Correct, s.Accuracy*100, s.CI.Lower*100, s.CI.Upper*100)
	}
}
