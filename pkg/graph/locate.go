package graph

import (
	"math"

	"route_planner/pkg/geo"
	"route_planner/pkg/model"
)

// FindClosest returns the index of the routable node nearest to (x, y).
// The scan runs in road order then way-node order — a fixed iteration, so
// ties keep the first node encountered and results are stable across runs.
// Linear cost is fine here: it is called at most twice per route query.
func (g *RoadGraph) FindClosest(x, y float64) (int, error) {
	minDist := math.Inf(1)
	closest := -1

	for _, road := range g.model.Roads {
		if road.Type == model.RoadFootway {
			continue
		}
		for _, nodeIdx := range g.model.Ways[road.Way].Nodes {
			n := g.model.Nodes[nodeIdx]
			dist := geo.Euclidean(x, y, n.X, n.Y)
			if dist < minDist {
				minDist = dist
				closest = nodeIdx
			}
		}
	}

	if closest < 0 {
		return 0, ErrEmptyGraph
	}
	return closest, nil
}
