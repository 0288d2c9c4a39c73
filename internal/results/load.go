package results

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/gavel/internal/dataset"
)

// LoadFile loads one raw result CSV, normalizes each row, and stamps the
// metadata parsed from the filename onto every record.
func LoadFile(f DiscoveredFile) ([]*Record, error) {
	rows, err := dataset.LoadCSV(f.Path)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("results: %s: %w", f.Path, err)
		}
		rec.ExamType = f.ExamType
		rec.Model = f.Model
		rec.Condition = f.Condition
		rec.QuestionType = f.QuestionType
		records = append(records, rec)
	}
	return records, nil
}

// SourceCount reports how many rows one input file contributed.
type SourceCount struct {
	Path string
	Rows int
}

// Collect loads every discovered file and concatenates the records into one
// table, reporting per-file row counts. Files that fail to parse as CSV are
// logged and skipped; the remaining files still contribute. Zero discovered
// files yields an empty table, not an error.
func Collect(files []DiscoveredFile) ([]*Record, []SourceCount) {
	var all []*Record
	var counts []SourceCount
	for _, f := range files {
		recs, err := LoadFile(f)
		if err != nil {
			slog.Warn("skipping unreadable result file", "file", f.Path, "error", err)
			continue
		}
		slog.Debug("collected result file", "file", f.Path, "rows", len(recs))
		all = append(all, recs...)
		counts = append(counts, SourceCount{Path: f.Path, Rows: len(recs)})
	}
	return all, counts
}

// LoadCombined reads a previously written combined results table.
func LoadCombined(path string) ([]*Record, error) {
	rows, err := dataset.LoadCSV(path)
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(rows))
	for _, row := range rows {
		rec, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("results: %s: %w", path, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveCombined writes records as the combined results table.
func SaveCombined(path string, records []*Record) error {
	rows := make([]dataset.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.ToRow())
	}
	return dataset.SaveCSV(path, CombinedColumns, rows)
}
