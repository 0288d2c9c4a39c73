package results

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DiscoveredFile is one raw result CSV found during directory traversal,
// with the metadata encoded in its filename already parsed out.
type DiscoveredFile struct {
	Path         string // absolute path to the CSV
	ExamType     ExamType
	Model        string
	Condition    Condition
	QuestionType string
}

// ParseFileName extracts exam type, model, condition, and question type from
// a raw result filename. The convention is
// <examtype>_<model>_<condition>_<qtype>.csv with exactly four
// underscore-separated components; model and question-type tokens must not
// contain underscores.
func ParseFileName(name string) (*DiscoveredFile, error) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, "_")
	if len(parts) != 4 {
		return nil, fmt.Errorf("results: filename %q has %d components, expected 4", name, len(parts))
	}

	examType, err := ParseExamType(parts[0])
	if err != nil {
		return nil, fmt.Errorf("results: filename %q: %w", name, err)
	}
	condition, err := ParseCondition(parts[2])
	if err != nil {
		return nil, fmt.Errorf("results: filename %q: missing condition marker: %w", name, err)
	}
	if parts[1] == "" || parts[3] == "" {
		return nil, fmt.Errorf("results: filename %q has an empty component", name)
	}

	return &DiscoveredFile{
		ExamType:     examType,
		Model:        parts[1],
		Condition:    condition,
		QuestionType: parts[3],
	}, nil
}

// Discover walks the given root directory and finds all raw result CSVs whose
// names follow the filename convention. Files with malformed names are logged
// and skipped; processing always continues. A missing or empty root yields an
// empty slice, not an error.
func Discover(root string) ([]DiscoveredFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("results: resolving root path: %w", err)
	}

	if _, err := os.Stat(absRoot); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("results directory does not exist", "path", absRoot)
			return nil, nil
		}
		return nil, fmt.Errorf("results: root path: %w", err)
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}

		// Skip hidden directories
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != absRoot {
			return fs.SkipDir
		}

		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".csv") {
			return nil
		}

		parsed, parseErr := ParseFileName(d.Name())
		if parseErr != nil {
			slog.Warn("skipping result file with malformed name", "file", d.Name(), "error", parseErr)
			return nil
		}

		parsed.Path = path
		files = append(files, *parsed)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("results: walking directory %s: %w", absRoot, err)
	}

	return files, nil
}
