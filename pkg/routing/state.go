package routing

import "math"

const noNode = int32(-1)

// SearchState holds the per-node mutable fields of one search run, kept as
// a struct-of-arrays table separate from the immutable geometry. A state
// table supports one in-flight search; Reset clears it for the next run.
type SearchState struct {
	Visited []bool
	G       []float64 // cost from start
	H       []float64 // heuristic estimate to goal
	Parent  []int32   // back-reference for path reconstruction, noNode if unset
	touched []int32   // nodes dirtied this run (for fast reset)
}

// NewSearchState creates a state table for a graph with n nodes.
func NewSearchState(n int) *SearchState {
	h := make([]float64, n)
	parent := make([]int32, n)
	for i := range h {
		h[i] = math.Inf(1)
		parent[i] = noNode
	}
	return &SearchState{
		Visited: make([]bool, n),
		G:       make([]float64, n),
		H:       h,
		Parent:  parent,
		touched: make([]int32, 0, 1024),
	}
}

// Reset restores only the touched entries to their initial values.
func (s *SearchState) Reset() {
	for _, node := range s.touched {
		s.Visited[node] = false
		s.G[node] = 0
		s.H[node] = math.Inf(1)
		s.Parent[node] = noNode
	}
	s.touched = s.touched[:0]
}

// touch records a node as dirtied. Must be called before the node's first
// mutation in a run.
func (s *SearchState) touch(node int32) {
	if !s.Visited[node] {
		s.touched = append(s.touched, node)
	}
}
