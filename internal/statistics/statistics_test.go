package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
}

func TestStdDev(t *testing.T) {
	assert.Equal(t, 0.0, StdDev(nil))
	assert.Equal(t, 0.0, StdDev([]float64{5, 5, 5}))
	assert.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestMeanOf(t *testing.T) {
	v1, v2 := 80.0, 90.0
	assert.Nil(t, MeanOf(nil))
	assert.Nil(t, MeanOf([]*float64{nil, nil}))

	got := MeanOf([]*float64{&v1, nil, &v2})
	require.NotNil(t, got)
	assert.InDelta(t, 85.0, *got, 1e-9)
}

func TestBootstrapCI(t *testing.T) {
	// 70% accuracy over 100 questions
	scores := make([]float64, 100)
	for i := 0; i < 70; i++ {
		scores[i] = 1
	}

	ci := BootstrapCI(scores, 0.95, 42)
	assert.InDelta(t, 0.7, ci.Mean, 1e-9)
	assert.Less(t, ci.Lower, 0.7)
	assert.Greater(t, ci.Upper, 0.7)
	assert.GreaterOrEqual(t, ci.Lower, 0.5)
	assert.LessOrEqual(t, ci.Upper, 0.9)
	assert.Equal(t, DefaultBootstrapIterations, ci.NumBootstraps)
}

func TestBootstrapCIDeterministicForSeed(t *testing.T) {
	scores := []float64{1, 0, 1, 1, 0, 1, 0, 1, 1, 1}
	first := BootstrapCI(scores, 0.95, 42)
	second := BootstrapCI(scores, 0.95, 42)
	assert.Equal(t, first, second)
}

func TestBootstrapCITooFewPoints(t *testing.T) {
	ci := BootstrapCI([]float64{1}, 0.95, 42)
	assert.Equal(t, 1.0, ci.Mean)
	assert.Equal(t, 1.0, ci.Lower)
	assert.Equal(t, 1.0, ci.Upper)
	assert.Zero(t, ci.NumBootstraps)
}
