package graph

import "errors"

// Sentinel error kinds. Callers branch on these with errors.Is; the
// package wraps additional context with fmt.Errorf("%w: ...", sentinel).
var (
	// ErrDimensionMismatch is returned when a vector's length does not
	// equal the graph's dimension.
	ErrDimensionMismatch = errors.New("vitehnsw/graph: dimension mismatch")

	// ErrInvalidParameter is returned for a non-positive M, MMax, MMax0,
	// or EfConstruction, or for a k-NN query with k > ef.
	ErrInvalidParameter = errors.New("vitehnsw/graph: invalid parameter")

	// ErrUnresolvedGraph is returned by Insert and KNNSearch when called
	// on a graph loaded from disk that has not yet been resolved.
	ErrUnresolvedGraph = errors.New("vitehnsw/graph: graph has not been resolved")

	// ErrInvalidGraph is returned by Resolve when the graph's adjacency
	// lists violate a structural invariant — an out-of-range index, a
	// friend list sized wrong for its node's level, or an entrance not
	// sitting on the top layer. Almost always a sign of a corrupt or
	// hand-crafted on-disk file rather than anything this package's own
	// Insert can produce.
	ErrInvalidGraph = errors.New("vitehnsw/graph: structural invariant violation")
)
