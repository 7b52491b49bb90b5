package graph

import "route_planner/pkg/model"

// UnionFind implements a disjoint-set data structure with path halving
// and union by rank.
type UnionFind struct {
	parent []uint32
	rank   []byte // max rank ~30 for realistic graphs
	size   []uint32
}

// NewUnionFind creates a UnionFind for n elements.
func NewUnionFind(n uint32) *UnionFind {
	parent := make([]uint32, n)
	size := make([]uint32, n)
	for i := uint32(0); i < n; i++ {
		parent[i] = i
		size[i] = 1
	}
	return &UnionFind{
		parent: parent,
		rank:   make([]byte, n),
		size:   size,
	}
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x uint32) uint32 {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]] // path halving
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already same set.
func (uf *UnionFind) Union(x, y uint32) bool {
	rx := uf.Find(x)
	ry := uf.Find(y)
	if rx == ry {
		return false
	}

	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// RoutableComponents reports how the routable subgraph splits into
// connected components: nodes sharing a non-footway way are connected.
// Returns the component count and the size of the largest one. A count
// above 1 means some start/goal pairs have no route between them.
func (g *RoadGraph) RoutableComponents() (count, largest int) {
	uf := NewUnionFind(uint32(len(g.model.Nodes)))
	routable := make([]bool, len(g.model.Nodes))

	for _, road := range g.model.Roads {
		if road.Type == model.RoadFootway {
			continue
		}
		nodes := g.model.Ways[road.Way].Nodes
		for i, n := range nodes {
			routable[n] = true
			if i > 0 {
				uf.Union(uint32(nodes[i-1]), uint32(n))
			}
		}
	}

	sizes := make(map[uint32]int)
	for i, ok := range routable {
		if !ok {
			continue
		}
		sizes[uf.Find(uint32(i))]++
	}
	for _, sz := range sizes {
		count++
		if sz > largest {
			largest = sz
		}
	}
	return count, largest
}
