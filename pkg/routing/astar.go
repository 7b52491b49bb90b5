package routing

import (
	"errors"
	"math"

	"route_planner/pkg/geo"
	"route_planner/pkg/graph"
	"route_planner/pkg/model"
)

// ErrNoRoute is returned when the open set empties before the goal is
// reached: the goal is unreachable from the start in the routable subgraph.
// A normal outcome, not an internal failure.
var ErrNoRoute = errors.New("no route found")

// Planner runs A* searches over a road graph. Not safe for concurrent use:
// it owns one search-state table and resets it at the start of each run.
type Planner struct {
	g     *graph.RoadGraph
	state *SearchState
	open  MinHeap
}

// NewPlanner creates a planner with a fresh state table for the graph.
func NewPlanner(g *graph.RoadGraph) *Planner {
	return &Planner{g: g, state: NewSearchState(g.NumNodes())}
}

// Search finds the shortest path between two node indices. It returns the
// node sequence from start to goal and the traversed distance in meters.
func (p *Planner) Search(start, goal int) ([]model.Node, float64, error) {
	p.state.Reset()
	p.open.Reset()

	s := int32(start)
	g := int32(goal)

	p.state.touch(s)
	p.state.Visited[s] = true
	p.state.G[s] = 0
	p.state.H[s] = p.dist(s, g)
	p.open.Push(s, p.state.G[s]+p.state.H[s])

	for p.open.Len() > 0 {
		current, _ := p.open.Pop()
		if current == g {
			path, distance := p.buildPath(current)
			return path, distance, nil
		}
		p.expand(current, g)
	}

	return nil, 0, ErrNoRoute
}

// expand discovers the current node's neighbors and pushes each unvisited
// one onto the open set. Marking on discovery closes a node permanently:
// the consistent Euclidean heuristic guarantees the first discovery is on
// a shortest path through the derived neighbor links.
func (p *Planner) expand(current, goal int32) {
	for _, neighbor := range p.neighbors(current) {
		if p.state.Visited[neighbor] {
			continue
		}
		p.state.touch(neighbor)
		p.state.Parent[neighbor] = current
		p.state.G[neighbor] = p.state.G[current] + p.dist(current, neighbor)
		p.state.H[neighbor] = p.dist(neighbor, goal)
		p.state.Visited[neighbor] = true
		p.open.Push(neighbor, p.state.G[neighbor]+p.state.H[neighbor])
	}
}

// neighbors derives the usable neighbors of a node: for every routable road
// the node lies on, the single closest unvisited node on that road's way.
// Each incident road contributes at most one candidate. This approximates
// way-order adjacency rather than computing it exactly.
func (p *Planner) neighbors(node int32) []int32 {
	var result []int32
	for _, road := range p.g.RoadsAt(int(node)) {
		closest := noNode
		closestDist := math.Inf(1)
		for _, candidate := range p.g.WayNodes(road) {
			c := int32(candidate)
			if p.state.Visited[c] {
				continue
			}
			dist := p.dist(node, c)
			if dist == 0 {
				// The node itself, or a co-located duplicate.
				continue
			}
			if dist < closestDist {
				closest = c
				closestDist = dist
			}
		}
		if closest != noNode {
			result = append(result, closest)
		}
	}
	return result
}

func (p *Planner) dist(a, b int32) float64 {
	na := p.g.Node(int(a))
	nb := p.g.Node(int(b))
	return geo.Euclidean(na.X, na.Y, nb.X, nb.Y)
}
