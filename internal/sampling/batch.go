package sampling

import (
	"math/rand"
)

// Default reliability/batching parameters. The shuffle seed is deliberately
// distinct from the sample seed so the rater ordering is independent of the
// draw.
const (
	DefaultReliabilitySize = 30
	DefaultReliabilitySeed = 42
	DefaultShuffleSeed     = 7
	DefaultBatchSize       = 100
)

// CarveReliability sets aside a seeded random subset of the given size for
// inter-rater reliability scoring and returns the remainder. The remainder is
// computed by sample-ID set membership, never by position, so it can safely
// be shuffled afterwards without risking overlap. When size >= len(samples)
// everything lands in the reliability subset.
func CarveReliability(samples []Sample, size int, seed int64) (reliability, remainder []Sample) {
	if size <= 0 {
		size = DefaultReliabilitySize
	}
	if size >= len(samples) {
		reliability = make([]Sample, len(samples))
		copy(reliability, samples)
		return reliability, nil
	}

	rng := rand.New(rand.NewSource(seed))
	picked := make(map[string]struct{}, size)
	for _, i := range rng.Perm(len(samples))[:size] {
		picked[samples[i].ID] = struct{}{}
	}

	for _, s := range samples {
		if _, ok := picked[s.ID]; ok {
			reliability = append(reliability, s)
		} else {
			remainder = append(remainder, s)
		}
	}
	return reliability, remainder
}

// Shuffle returns a seeded random permutation of samples, leaving the input
// untouched.
func Shuffle(samples []Sample, seed int64) []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Partition splits samples into fixed-size batches for distribution to
// raters. The final batch holds whatever is left over.
func Partition(samples []Sample, batchSize int) [][]Sample {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var batches [][]Sample
	for start := 0; start < len(samples); start += batchSize {
		end := start + batchSize
		if end > len(samples) {
			end = len(samples)
		}
		batches = append(batches, samples[start:end])
	}
	return batches
}
