// Package projectconfig provides the ProjectConfig struct and loader for
// .gavel.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/spboyer/gavel/internal/labels"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultResultsDir  = "results/"
	DefaultCombinedCSV = "results/combined.csv"
	DefaultScoresCSV   = "results/scores.csv"
	DefaultSamplesDir  = "samples/"
	DefaultLabeledDir  = "labeled/"

	DefaultCorrectSampleSize = 30
	DefaultReliabilitySize   = 30
	DefaultBatchSize         = 100
	DefaultIDWidth           = 4

	DefaultSampleSeed      = 42
	DefaultReliabilitySeed = 42
	DefaultShuffleSeed     = 7
	DefaultBootstrapSeed   = 42
)

// PathsConfig holds the fixed relative paths the pipeline reads and writes.
type PathsConfig struct {
	Results  string `yaml:"results,omitempty"`
	Combined string `yaml:"combined,omitempty"`
	Scores   string `yaml:"scores,omitempty"`
	Samples  string `yaml:"samples,omitempty"`
	Labeled  string `yaml:"labeled,omitempty"`
}

// SamplingConfig holds sample sizes and seeds.
type SamplingConfig struct {
	CorrectSampleSize int   `yaml:"correct_sample_size,omitempty"`
	ReliabilitySize   int   `yaml:"reliability_size,omitempty"`
	BatchSize         int   `yaml:"batch_size,omitempty"`
	IDWidth           int   `yaml:"id_width,omitempty"`
	SampleSeed        int64 `yaml:"sample_seed,omitempty"`
	ReliabilitySeed   int64 `yaml:"reliability_seed,omitempty"`
	ShuffleSeed       int64 `yaml:"shuffle_seed,omitempty"`
}

// RatersConfig holds the reconciliation precedence orders.
type RatersConfig struct {
	TruePrecedence  []string `yaml:"true_precedence,omitempty"`
	FalsePrecedence []string `yaml:"false_precedence,omitempty"`
}

// ScoringConfig holds quantitative-report settings.
type ScoringConfig struct {
	BootstrapSeed int64 `yaml:"bootstrap_seed,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .gavel.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Sampling SamplingConfig `yaml:"sampling,omitempty"`
	Raters   RatersConfig   `yaml:"raters,omitempty"`
	Scoring  ScoringConfig  `yaml:"scoring,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Results:  DefaultResultsDir,
			Combined: DefaultCombinedCSV,
			Scores:   DefaultScoresCSV,
			Samples:  DefaultSamplesDir,
			Labeled:  DefaultLabeledDir,
		},
		Sampling: SamplingConfig{
			CorrectSampleSize: DefaultCorrectSampleSize,
			ReliabilitySize:   DefaultReliabilitySize,
			BatchSize:         DefaultBatchSize,
			IDWidth:           DefaultIDWidth,
			SampleSeed:        DefaultSampleSeed,
			ReliabilitySeed:   DefaultReliabilitySeed,
			ShuffleSeed:       DefaultShuffleSeed,
		},
		Raters: RatersConfig{
			TruePrecedence:  append([]string{}, labels.DefaultTruePrecedence...),
			FalsePrecedence: append([]string{}, labels.DefaultFalsePrecedence...),
		},
		Scoring: ScoringConfig{
			BootstrapSeed: DefaultBootstrapSeed,
		},
	}
}

// Load finds .gavel.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. If no config
// file is found, returns defaults with a nil error. Real I/O errors (e.g.
// permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .gavel.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .gavel.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .gavel.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".gavel.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.Results != "" {
		dst.Paths.Results = src.Paths.Results
	}
	if src.Paths.Combined != "" {
		dst.Paths.Combined = src.Paths.Combined
	}
	if src.Paths.Scores != "" {
		dst.Paths.Scores = src.Paths.Scores
	}
	if src.Paths.Samples != "" {
		dst.Paths.Samples = src.Paths.Samples
	}
	if src.Paths.Labeled != "" {
		dst.Paths.Labeled = src.Paths.Labeled
	}

	// Sampling
	if src.Sampling.CorrectSampleSize > 0 {
		dst.Sampling.CorrectSampleSize = src.Sampling.CorrectSampleSize
	}
	if src.Sampling.ReliabilitySize > 0 {
		dst.Sampling.ReliabilitySize = src.Sampling.ReliabilitySize
	}
	if src.Sampling.BatchSize > 0 {
		dst.Sampling.BatchSize = src.Sampling.BatchSize
	}
	if src.Sampling.IDWidth > 0 {
		dst.Sampling.IDWidth = src.Sampling.IDWidth
	}
	if src.Sampling.SampleSeed != 0 {
		dst.Sampling.SampleSeed = src.Sampling.SampleSeed
	}
	if src.Sampling.ReliabilitySeed != 0 {
		dst.Sampling.ReliabilitySeed = src.Sampling.ReliabilitySeed
	}
	if src.Sampling.ShuffleSeed != 0 {
		dst.Sampling.ShuffleSeed = src.Sampling.ShuffleSeed
	}

	// Raters
	if len(src.Raters.TruePrecedence) > 0 {
		dst.Raters.TruePrecedence = src.Raters.TruePrecedence
	}
	if len(src.Raters.FalsePrecedence) > 0 {
		dst.Raters.FalsePrecedence = src.Raters.FalsePrecedence
	}

	// Scoring
	if src.Scoring.BootstrapSeed != 0 {
		dst.Scoring.BootstrapSeed = src.Scoring.BootstrapSeed
	}
}

// ResolvePaths rebases every relative path in the config onto baseDir.
// Absolute paths are left unchanged.
func (c *ProjectConfig) ResolvePaths(baseDir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}
	c.Paths.Results = resolve(c.Paths.Results)
	c.Paths.Combined = resolve(c.Paths.Combined)
	c.Paths.Scores = resolve(c.Paths.Scores)
	c.Paths.Samples = resolve(c.Paths.Samples)
	c.Paths.Labeled = resolve(c.Paths.Labeled)
}
