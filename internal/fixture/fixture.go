// Package fixture generates pseudo-random vectors for the CLI's
// random-insert command and for deterministic test graphs.
//
// Adapted from generateRandomVectorsWithRNG in the prior
// benchmarks/insert_test.go, which takes an explicit *rand.Rand so the
// same seed reproduces the same vectors across runs — generalized here
// from float32 in [0,1) to float64 in [-1,1), which is what cosine
// distance over arbitrary-sign embeddings expects.
package fixture

import "math/rand/v2"

// RandomVectors returns count vectors of dim float64 components each,
// drawn uniformly from [-1, 1) using rng.
func RandomVectors(rng *rand.Rand, count, dim int) [][]float64 {
	vectors := make([][]float64, count)
	for i := range vectors {
		vectors[i] = RandomVector(rng, dim)
	}
	return vectors
}

// RandomVector returns one dim-length vector drawn uniformly from [-1, 1).
func RandomVector(rng *rand.Rand, dim int) []float64 {
	v := make([]float64, dim)
	for j := range v {
		v[j] = rng.Float64()*2 - 1
	}
	return v
}

// NewSeededRand builds the PCG-backed generator used whenever the CLI's
// --seed flag (or a test) needs reproducible output, mirroring the
// teacher's seedVal-from-env pattern but taking the seed as a parameter
// instead of reading an environment variable.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}
