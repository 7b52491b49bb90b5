package graph

import (
	"errors"
	"fmt"

	"route_planner/pkg/model"
)

// ErrEmptyGraph is returned when no routable node exists.
var ErrEmptyGraph = errors.New("no routable node in graph")

// ErrInvalidReference marks a contract violation in the geometry source:
// a road pointing at a missing way, or a way pointing at a missing node.
var ErrInvalidReference = errors.New("invalid geometry reference")

// RoadGraph indexes which roads each node participates in. Footways are
// excluded, so every road reachable through the index is drivable. Built
// once per model and read-only afterwards; safe to share across searches.
type RoadGraph struct {
	model     *model.Model
	nodeRoads [][]int32 // node index -> indices into model.Roads
}

// Build validates the model's references and precomputes the node-to-road
// index. Cost is linear in the total (way, node) membership pairs.
func Build(m *model.Model) (*RoadGraph, error) {
	for ri, road := range m.Roads {
		if road.Way < 0 || road.Way >= len(m.Ways) {
			return nil, fmt.Errorf("road %d references way %d of %d: %w",
				ri, road.Way, len(m.Ways), ErrInvalidReference)
		}
	}
	for wi, way := range m.Ways {
		for _, n := range way.Nodes {
			if n < 0 || n >= len(m.Nodes) {
				return nil, fmt.Errorf("way %d references node %d of %d: %w",
					wi, n, len(m.Nodes), ErrInvalidReference)
			}
		}
	}

	nodeRoads := make([][]int32, len(m.Nodes))
	for ri, road := range m.Roads {
		if road.Type == model.RoadFootway {
			continue
		}
		for _, nodeIdx := range m.Ways[road.Way].Nodes {
			nodeRoads[nodeIdx] = append(nodeRoads[nodeIdx], int32(ri))
		}
	}

	return &RoadGraph{model: m, nodeRoads: nodeRoads}, nil
}

// Model returns the underlying geometry.
func (g *RoadGraph) Model() *model.Model { return g.model }

// NumNodes returns the size of the node table.
func (g *RoadGraph) NumNodes() int { return len(g.model.Nodes) }

// Node returns a snapshot of the node at the given index.
func (g *RoadGraph) Node(i int) model.Node { return g.model.Nodes[i] }

// RoadsAt returns the indices of the routable roads incident to a node.
// The returned slice is owned by the graph and must not be mutated.
func (g *RoadGraph) RoadsAt(node int) []int32 { return g.nodeRoads[node] }

// WayNodes returns the ordered node indices of the way behind a road.
func (g *RoadGraph) WayNodes(road int32) []int {
	return g.model.Ways[g.model.Roads[road].Way].Nodes
}

// MetricScale converts planar map units to meters.
func (g *RoadGraph) MetricScale() float64 { return g.model.MetricScale }
