// Package graph implements the Hierarchical Navigable Small World index:
// a layered proximity graph supporting incremental insertion and
// approximate k-nearest-neighbor search under cosine distance.
//
// Nodes live in a single growing slice and adjacency lists hold node
// indices rather than pointers, trading a reference-counted,
// resolved/unresolved node graph for a plain arena. This is adapted from
// an HNSW implementation that already used an int-indexed Nodes slice —
// generalized from Euclidean distance over float32 vectors to cosine
// distance over float64 vectors, and from a pointer-chasing
// Node.Neighbors [][]*Node to an index-chasing Node.Friends [][]uint64.
package graph

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/vitelabs/vitehnsw/internal/vmath"
)

// Node is one vector in the graph. Index is its stable identity — the
// slot it occupies in Graph.Nodes — and never changes once assigned.
type Node struct {
	Index    uint64
	Vector   []float64
	MaxLevel int
	// Friends[L] holds the indices of this node's neighbors at layer L.
	// len(Friends) always equals MaxLevel+1.
	Friends [][]uint64
}

// Graph is the HNSW index. The zero value is not usable; construct one
// with New or Load (see the codec package).
type Graph struct {
	Dimension      int
	ML             float64
	MMax           int
	MMax0          int
	EfConstruction int
	LayerCount     int
	Entrance       uint64
	Nodes          []Node

	randFloat64 func() float64
	resolved    bool
}

// New creates a graph seeded with a single node holding firstVector.
//
// m is the target degree used to derive the level-sampling normalization
// factor (ML = 1/ln(m)); mMax and mMax0 cap per-node degree above and at
// layer 0 respectively; efConstruction sizes the candidate list used
// while inserting. All four must be positive.
func New(firstVector []float64, m, mMax, mMax0, efConstruction int) (*Graph, error) {
	return newGraph(firstVector, m, mMax, mMax0, efConstruction, rand.Float64)
}

// NewWithRand is New with an injectable uniform-[0,1) source, for
// deterministic construction under a fixed seed.
func NewWithRand(firstVector []float64, m, mMax, mMax0, efConstruction int, randFloat64 func() float64) (*Graph, error) {
	return newGraph(firstVector, m, mMax, mMax0, efConstruction, randFloat64)
}

func newGraph(firstVector []float64, m, mMax, mMax0, efConstruction int, randFloat64 func() float64) (*Graph, error) {
	if m <= 0 || mMax <= 0 || mMax0 <= 0 || efConstruction <= 0 {
		return nil, fmt.Errorf("%w: M, MMax, MMax0, and EfConstruction must all be positive", ErrInvalidParameter)
	}
	if len(firstVector) == 0 {
		return nil, fmt.Errorf("%w: seed vector must not be empty", ErrDimensionMismatch)
	}
	vec := append([]float64(nil), firstVector...)
	g := &Graph{
		Dimension:      len(firstVector),
		ML:             1 / math.Log(float64(m)),
		MMax:           mMax,
		MMax0:          mMax0,
		EfConstruction: efConstruction,
		LayerCount:     1,
		Entrance:       0,
		Nodes: []Node{{
			Index:    0,
			Vector:   vec,
			MaxLevel: 0,
			Friends:  [][]uint64{{}},
		}},
		randFloat64: randFloat64,
		resolved:    true,
	}
	return g, nil
}

// NewUnresolved builds a Graph directly from decoded parts, leaving it
// unresolved. It exists for the codec package to hand back a freshly
// loaded graph; callers elsewhere should use New.
func NewUnresolved(dimension int, mL float64, mMax, mMax0, efConstruction, layerCount int, entrance uint64, nodes []Node) *Graph {
	return &Graph{
		Dimension:      dimension,
		ML:             mL,
		MMax:           mMax,
		MMax0:          mMax0,
		EfConstruction: efConstruction,
		LayerCount:     layerCount,
		Entrance:       entrance,
		Nodes:          nodes,
		randFloat64:    rand.Float64,
		resolved:       false,
	}
}

// Len returns the number of nodes currently in the graph.
func (g *Graph) Len() int { return len(g.Nodes) }

// IsResolved reports whether Insert and KNNSearch may run on this graph.
func (g *Graph) IsResolved() bool { return g.resolved }

// Resolve validates the structural invariants a freshly decoded graph
// cannot be assumed to satisfy — every node in its own slot with one
// friend list per level and a vector of the graph's dimension, every
// adjacency index in range and pointing at a node that participates in
// that layer, and the entrance sitting on the top layer — and marks the
// graph usable by Insert and KNNSearch. Adjacency symmetry is not checked.
//
// A graph built with New is already resolved; calling Resolve again is a
// cheap no-op re-validation. This is the one place the original's
// resolved/unresolved split still shows up: since every adjacency list in
// this design is already index-addressed, there is no pointer
// materialization step left to do, only the invariant check itself.
func (g *Graph) Resolve() error {
	n := uint64(len(g.Nodes))
	for i := range g.Nodes {
		node := &g.Nodes[i]
		if node.Index != uint64(i) {
			return fmt.Errorf("%w: node at slot %d carries index %d", ErrInvalidGraph, i, node.Index)
		}
		if len(node.Friends) != node.MaxLevel+1 {
			return fmt.Errorf("%w: node %d has %d friend layers, want %d", ErrInvalidGraph, node.Index, len(node.Friends), node.MaxLevel+1)
		}
		for level, friends := range node.Friends {
			for _, f := range friends {
				if f >= n {
					return fmt.Errorf("%w: node %d layer %d references out-of-range index %d", ErrInvalidGraph, node.Index, level, f)
				}
				if g.Nodes[f].MaxLevel < level {
					return fmt.Errorf("%w: node %d layer %d references node %d which only reaches level %d", ErrInvalidGraph, node.Index, level, f, g.Nodes[f].MaxLevel)
				}
			}
		}
		if len(node.Vector) != g.Dimension {
			return fmt.Errorf("%w: node %d vector has length %d, want %d", ErrInvalidGraph, node.Index, len(node.Vector), g.Dimension)
		}
	}
	if g.Entrance >= n {
		return fmt.Errorf("%w: entrance index %d out of range", ErrInvalidGraph, g.Entrance)
	}
	if g.Nodes[g.Entrance].MaxLevel != g.LayerCount-1 {
		return fmt.Errorf("%w: entrance node %d has max level %d, want %d", ErrInvalidGraph, g.Entrance, g.Nodes[g.Entrance].MaxLevel, g.LayerCount-1)
	}
	g.resolved = true
	return nil
}

// distance is a small convenience wrapper kept next to the graph so call
// sites in insert.go and search.go read as "distance between a query and
// a node" rather than juggling raw vector slices.
func (g *Graph) distance(query []float64, idx uint64) float64 {
	return vmath.CosineDistance(query, g.Nodes[idx].Vector)
}
