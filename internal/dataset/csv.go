// Package dataset provides header-mapped CSV loading and saving for the
// pipeline's tabular data. Exports are written as UTF-8 with a byte-order
// mark so spreadsheet tools open them with the correct encoding.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// LoadCSV reads a CSV file and returns rows as maps of column to value.
// The first row is treated as headers (column names). A leading UTF-8
// byte-order mark, if present, is stripped before parsing so round-tripping
// our own exports works.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", path)
	}

	headers := records[0]
	rows := make([]Row, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Headers reads only the header row of a CSV file.
func Headers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	reader := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("csv: read header of %s: %w", path, err)
	}
	return headers, nil
}

// SaveCSV writes rows to path as UTF-8 with a byte-order mark, with columns
// in the given order. Cells missing from a row are written as empty strings;
// values under columns not listed are dropped. Parent directories are
// created as needed.
func SaveCSV(path string, columns []string, rows []Row) error {
	if len(columns) == 0 {
		return fmt.Errorf("csv: no columns given for %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("csv: create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create %s: %w", path, err)
	}

	// UTF8BOM's encoder emits the BOM before the first write.
	tw := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(tw)

	if err := w.Write(columns); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("csv: write header of %s: %w", path, err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			record[i] = row[col]
		}
		if err := w.Write(record); err != nil {
			f.Close() //nolint:errcheck
			return fmt.Errorf("csv: write row to %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("csv: flush %s: %w", path, err)
	}
	if err := tw.Close(); err != nil {
		f.Close() //nolint:errcheck
		return fmt.Errorf("csv: finish %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("csv: close %s: %w", path, err)
	}
	return nil
}

// RenameColumns returns a copy of rows with columns renamed per the given
// old-name to new-name mapping. Columns not in the mapping are kept as-is.
func RenameColumns(rows []Row, renames map[string]string) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		renamed := make(Row, len(row))
		for k, v := range row {
			if newName, ok := renames[k]; ok {
				renamed[newName] = v
			} else {
				renamed[k] = v
			}
		}
		out = append(out, renamed)
	}
	return out
}
