// Package manifest records what each pipeline stage read, wrote, and which
// seeds it ran with, so a sample export can always be traced back to the
// collect run that produced its input.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileEntry is one input or output file with its row count.
type FileEntry struct {
	Path string `json:"path"`
	Rows int    `json:"rows"`
}

// Manifest describes one pipeline stage run.
type Manifest struct {
	RunID     string           `json:"run_id"`
	Stage     string           `json:"stage"`
	CreatedAt time.Time        `json:"created_at"`
	Seeds     map[string]int64 `json:"seeds,omitempty"`
	Inputs    []FileEntry      `json:"inputs,omitempty"`
	Outputs   []FileEntry      `json:"outputs,omitempty"`
}

// New starts a manifest for the named stage with a fresh run ID.
func New(stage string) *Manifest {
	return &Manifest{
		RunID:     uuid.NewString(),
		Stage:     stage,
		CreatedAt: time.Now().UTC(),
	}
}

// AddInput records an input file and its row count.
func (m *Manifest) AddInput(path string, rows int) {
	m.Inputs = append(m.Inputs, FileEntry{Path: path, Rows: rows})
}

// AddOutput records an output file and its row count.
func (m *Manifest) AddOutput(path string, rows int) {
	m.Outputs = append(m.Outputs, FileEntry{Path: path, Rows: rows})
}

// SetSeed records a named RNG seed used by the stage.
func (m *Manifest) SetSeed(name string, seed int64) {
	if m.Seeds == nil {
		m.Seeds = make(map[string]int64)
	}
	m.Seeds[name] = seed
}

// Save writes the manifest as indented JSON, creating parent directories as
// needed.
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("manifest: create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manifest: write %s: %w", path, err)
	}
	return nil
}

// Load reads a previously saved manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	return &m, nil
}
