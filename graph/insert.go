package graph

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/vitelabs/vitehnsw/internal/candidates"
	"github.com/vitelabs/vitehnsw/internal/vmath"
)

// Insert adds vector to the graph, wiring it into however many layers it
// samples into and repairing neighbor lists along the way.
//
// This follows the classic two-phase HNSW insert shape: descend the
// upper layers greedily with a beam of one to find an entry point close
// to the new vector, then widen the beam to EfConstruction and link
// bidirectionally from the sampled level down to layer 0.
func (g *Graph) Insert(vector []float64) error {
	if !g.resolved {
		return ErrUnresolvedGraph
	}
	if len(vector) != g.Dimension {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), g.Dimension)
	}

	prevEntrance := g.Entrance
	prevTopLevel := g.Nodes[prevEntrance].MaxLevel

	level := vmath.SampleLevel(g.randFloat64, g.ML, g.LayerCount)

	newIdx := uint64(len(g.Nodes))
	friends := make([][]uint64, level+1)
	for i := range friends {
		friends[i] = []uint64{}
	}
	g.Nodes = append(g.Nodes, Node{
		Index:    newIdx,
		Vector:   append([]float64(nil), vector...),
		MaxLevel: level,
		Friends:  friends,
	})

	if level >= g.LayerCount {
		g.Entrance = newIdx
		g.LayerCount = level + 1
	}

	// Greedy descent with a beam of one, from the previous top layer down
	// to (but not including) the sampled level. When the new node extends
	// the graph's top layer this range is empty and ep stays prevEntrance,
	// which is exactly the entry point the fill-in loop below needs —
	// no special casing for "inserting a new top layer" required.
	ep := prevEntrance
	for lc := prevTopLevel; lc > level; lc-- {
		found := g.searchLayer(vector, ep, 1, lc)
		if len(found) > 0 {
			ep = found[0].Idx
		}
	}

	maxLayer := level
	if prevTopLevel < maxLayer {
		maxLayer = prevTopLevel
	}
	for lc := maxLayer; lc >= 0; lc-- {
		m := g.MMax
		if lc == 0 {
			m = g.MMax0
		}
		found := g.searchLayer(vector, ep, g.EfConstruction, lc)
		if len(found) == 0 {
			continue
		}
		selected := selectNeighborsSimple(found, m)
		g.connectBidirectional(newIdx, selected, lc, m)
		ep = selected[0].Idx
	}

	return nil
}

// searchLayer runs a greedy best-first search for the ef candidates in
// the graph closest to q, confined to layer lc and starting from ep. It
// returns candidates sorted by ascending distance.
func (g *Graph) searchLayer(q []float64, ep uint64, ef int, lc int) []candidates.Item {
	visited := map[uint64]bool{ep: true}

	epDist := g.distance(q, ep)

	frontier := candidates.NewMinHeap()
	heap.Init(frontier)
	heap.Push(frontier, candidates.Item{Dist: epDist, Idx: ep})

	results := candidates.NewMaxHeap()
	heap.Init(results)
	heap.Push(results, candidates.Item{Dist: epDist, Idx: ep})

	for frontier.Len() > 0 {
		nearest := heap.Pop(frontier).(candidates.Item)
		if results.Len() >= ef && nearest.Dist > results.Peek().Dist {
			break
		}

		node := &g.Nodes[nearest.Idx]
		if lc >= len(node.Friends) {
			continue
		}
		for _, f := range node.Friends[lc] {
			if visited[f] {
				continue
			}
			visited[f] = true

			d := g.distance(q, f)
			if results.Len() < ef || d < results.Peek().Dist {
				heap.Push(frontier, candidates.Item{Dist: d, Idx: f})
				heap.Push(results, candidates.Item{Dist: d, Idx: f})
				if results.Len() > ef {
					heap.Pop(results)
				}
			}
		}
	}

	return candidates.SortedAscending(results)
}

// selectNeighborsSimple keeps the m closest candidates — the simple
// selector, as opposed to the richer diversity-aware heuristic from the
// HNSW paper.
func selectNeighborsSimple(items []candidates.Item, m int) []candidates.Item {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Dist != items[j].Dist {
			return items[i].Dist < items[j].Dist
		}
		return items[i].Idx < items[j].Idx
	})
	if len(items) > m {
		items = items[:m]
	}
	return items
}

// connectBidirectional links u to each of neighbors at layer lc and adds
// the reverse edge on each neighbor, shrinking any neighbor list that
// overflows m.
func (g *Graph) connectBidirectional(u uint64, neighbors []candidates.Item, lc int, m int) {
	uFriends := make([]uint64, len(neighbors))
	for i, n := range neighbors {
		uFriends[i] = n.Idx
	}
	g.Nodes[u].Friends[lc] = uFriends

	for _, n := range neighbors {
		v := &g.Nodes[n.Idx]
		v.Friends[lc] = append(v.Friends[lc], u)
		if len(v.Friends[lc]) > m {
			g.shrink(n.Idx, lc, m)
		}
	}
}

// shrink reselects v's neighbor list at layer lc down to m entries,
// measuring distance from v's own vector rather than from whatever
// vector triggered the overflow — the new node's proximity to v's other
// friends is irrelevant to which of those friends v should keep. Each
// dropped friend also loses its edge back to v, so adjacency stays
// symmetric.
func (g *Graph) shrink(v uint64, lc int, m int) {
	node := &g.Nodes[v]
	items := make([]candidates.Item, len(node.Friends[lc]))
	for i, f := range node.Friends[lc] {
		items[i] = candidates.Item{Dist: g.distance(node.Vector, f), Idx: f}
	}
	selected := selectNeighborsSimple(items, m)
	kept := make([]uint64, len(selected))
	keep := make(map[uint64]bool, len(selected))
	for i, s := range selected {
		kept[i] = s.Idx
		keep[s.Idx] = true
	}
	for _, f := range node.Friends[lc] {
		if keep[f] {
			continue
		}
		back := g.Nodes[f].Friends[lc]
		for i, b := range back {
			if b == v {
				g.Nodes[f].Friends[lc] = append(back[:i], back[i+1:]...)
				break
			}
		}
	}
	node.Friends[lc] = kept
}
