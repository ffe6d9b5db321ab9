// Package searcher implements the best-first search phase: an open list
// of pending nodes and an engine that expands sample checkpoints into
// children ordered by a heuristic cost, producing a lazy sequence of
// complete program traces.
package searcher

import "container/heap"

// node is one pending element of the open list: a cost and a thunk that,
// when invoked, resumes the paused computation it represents.
type node struct {
	cost   float64
	seq    int64
	resume func() any
}

// nodeHeap is a container/heap.Interface ordering nodes ascending by
// cost, with insertion order (seq) as the FIFO tie-break.
type nodeHeap []*node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(*node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// OpenList is the search frontier: a priority queue of pending nodes
// ordered ascending by (cost, insertion key). It is not safe for
// concurrent use, matching the single-threaded search model.
type OpenList struct {
	heap    nodeHeap
	nextSeq int64
}

// NewOpenList returns an empty open list.
func NewOpenList() *OpenList {
	return &OpenList{}
}

// Insert enqueues a node with the given cost and resume thunk, assigning
// it the next strictly-increasing insertion key for tie-breaking.
func (l *OpenList) Insert(cost float64, resume func() any) {
	heap.Push(&l.heap, &node{cost: cost, seq: l.nextSeq, resume: resume})
	l.nextSeq++
}

// Pop removes and returns the minimum-priority node's resume thunk. ok is
// false when the open list is empty.
func (l *OpenList) Pop() (resume func() any, ok bool) {
	if len(l.heap) == 0 {
		return nil, false
	}
	n := heap.Pop(&l.heap).(*node)
	return n.resume, true
}

// Len reports the number of pending nodes.
func (l *OpenList) Len() int {
	return len(l.heap)
}
