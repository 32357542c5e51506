// Package vmath holds the handful of numeric primitives the HNSW graph
// builds on: cosine distance between vectors and the exponential level
// sampler used to assign a new node's top layer.
package vmath

import "math"

// CosineDistance returns 1 - cos(a, b) for two equal-length vectors.
//
// It is an ordering key, not a metric: floating-point rounding can push the
// result mildly negative for near-identical vectors, and it is undefined
// (NaN) when either vector has zero norm. Callers must never insert a
// zero-norm vector.
func CosineDistance(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// SampleLevel draws a new node's level from an exponential distribution
// normalized by mL (1/ln(M)), then clamps it to layerCount so a single
// insertion can extend the graph by at most one new top layer.
//
// randFloat64 must return values uniformly distributed in [0, 1); the
// caller supplies it so the graph can swap a process-wide source for a
// seeded one in tests.
func SampleLevel(randFloat64 func() float64, mL float64, layerCount int) int {
	u := randFloat64()
	// Float64() can return exactly 0; ln(0) is -Inf, which would produce an
	// unbounded level before clamping. Nudge away from the boundary instead
	// of letting the clamp silently absorb it.
	if u <= 0 {
		u = math.SmallestNonzeroFloat64
	}
	level := int(math.Floor(-math.Log(u) * mL))
	if level < 0 {
		level = 0
	}
	if level > layerCount {
		level = layerCount
	}
	return level
}
