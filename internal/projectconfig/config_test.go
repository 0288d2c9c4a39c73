package projectconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gavel.yaml"), []byte(content), 0o644))
}

func TestLoadNoFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultResultsDir, cfg.Paths.Results)
	assert.Equal(t, DefaultCorrectSampleSize, cfg.Sampling.CorrectSampleSize)
	assert.Equal(t, int64(DefaultSampleSeed), cfg.Sampling.SampleSeed)
	assert.Equal(t, []string{"hyejin", "minsu", "jiwon"}, cfg.Raters.TruePrecedence)
	assert.Equal(t, []string{"jiwon", "hyejin", "minsu"}, cfg.Raters.FalsePrecedence)
}

func TestLoadMergesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
paths:
  results: raw/
sampling:
  correct_sample_size: 50
  shuffle_seed: 99
raters:
  true_precedence: [alice, bob]
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "raw/", cfg.Paths.Results)
	assert.Equal(t, DefaultSamplesDir, cfg.Paths.Samples, "unset fields keep defaults")
	assert.Equal(t, 50, cfg.Sampling.CorrectSampleSize)
	assert.Equal(t, int64(99), cfg.Sampling.ShuffleSeed)
	assert.Equal(t, int64(DefaultSampleSeed), cfg.Sampling.SampleSeed)
	assert.Equal(t, []string{"alice", "bob"}, cfg.Raters.TruePrecedence)
	assert.Equal(t, []string{"jiwon", "hyejin", "minsu"}, cfg.Raters.FalsePrecedence)
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "sampling:\n  batch_size: 25\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Sampling.BatchSize)
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "paths: [not: a: mapping\n")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .gavel.yaml")
}

func TestResolvePaths(t *testing.T) {
	cfg := New()
	cfg.Paths.Labeled = "/absolute/labeled"
	cfg.ResolvePaths("/base")

	assert.Equal(t, filepath.Join("/base", DefaultResultsDir), cfg.Paths.Results)
	assert.Equal(t, filepath.Join("/base", DefaultCombinedCSV), cfg.Paths.Combined)
	assert.Equal(t, "/absolute/labeled", cfg.Paths.Labeled)
}
