// Package candidates provides the two priority queues layer search drives
// its beam through: a min-heap frontier of unexplored candidates and a
// bounded max-heap of the best results found so far.
//
// This is adapted from the prior structs.MinHeap/MaxHeap/NodeHeap
// trio, generalized from float32 distances with bit-packed uint64 heap
// items to plain float64 distances over uint64 node indices — the
// distance/id bit-packing trick the prior design used to keep a heap item in a
// single machine word doesn't have room left once both the distance and
// the id are 64 bits wide, so Item is a small struct instead.
package candidates

import "container/heap"

// Item pairs a node index with its distance to the query that produced
// this candidate list.
type Item struct {
	Dist float64
	Idx  uint64
}

// MinHeap orders items by ascending distance, ties broken by ascending
// index, matching the spec's deterministic tie-break rule. It drives the
// frontier of unexplored candidates in layer search.
type MinHeap []Item

func NewMinHeap() *MinHeap {
	h := make(MinHeap, 0, 64)
	return &h
}

func (h MinHeap) Len() int { return len(h) }
func (h MinHeap) Less(i, j int) bool {
	if h[i].Dist != h[j].Dist {
		return h[i].Dist < h[j].Dist
	}
	return h[i].Idx < h[j].Idx
}
func (h MinHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *MinHeap) Push(x any) { *h = append(*h, x.(Item)) }

func (h *MinHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// MaxHeap orders items by descending distance, ties broken by descending
// index, so the single worst candidate — farthest, or farthest among
// equidistant ties — always sits at the root ready for eviction. This is
// the "results" working set bounded to ef entries during layer search.
type MaxHeap []Item

func NewMaxHeap() *MaxHeap {
	h := make(MaxHeap, 0, 64)
	return &h
}

func (h MaxHeap) Len() int { return len(h) }
func (h MaxHeap) Less(i, j int) bool {
	if h[i].Dist != h[j].Dist {
		return h[i].Dist > h[j].Dist
	}
	return h[i].Idx > h[j].Idx
}
func (h MaxHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *MaxHeap) Push(x any) { *h = append(*h, x.(Item)) }

func (h *MaxHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Peek returns the farthest item without removing it. Callers must ensure
// the heap is non-empty.
func (h MaxHeap) Peek() Item { return h[0] }

// SortedAscending drains a MaxHeap and returns its items ordered closest
// first. The heap is empty after this call.
func SortedAscending(h *MaxHeap) []Item {
	n := h.Len()
	out := make([]Item, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(Item)
	}
	return out
}
