package manifest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssignsUniqueRunIDs(t *testing.T) {
	a := New("collect")
	b := New("collect")
	assert.NotEmpty(t, a.RunID)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Equal(t, "collect", a.Stage)
	assert.False(t, a.CreatedAt.IsZero())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := New("sample")
	m.SetSeed("sample_seed", 42)
	m.SetSeed("shuffle_seed", 7)
	m.AddInput("results/combined.csv", 1200)
	m.AddOutput("samples/true_samples.csv", 90)
	m.AddOutput("samples/false_samples.csv", 310)

	path := filepath.Join(t.TempDir(), "out", "manifest.json")
	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.RunID, loaded.RunID)
	assert.Equal(t, int64(42), loaded.Seeds["sample_seed"])
	require.Len(t, loaded.Outputs, 2)
	assert.Equal(t, 310, loaded.Outputs[1].Rows)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
