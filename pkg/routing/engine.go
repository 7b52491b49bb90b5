package routing

import (
	"context"
	"fmt"

	"route_planner/pkg/graph"
	"route_planner/pkg/model"
)

// Point is a position in normalized map units (the geometry source's
// coordinate space). Callers doing percentage-to-unit conversion do so
// before invoking the router.
type Point struct {
	X float64
	Y float64
}

// RouteResult is the output of a route query. Path is owned by the caller.
type RouteResult struct {
	DistanceMeters float64
	Path           []model.Node
}

// Router is the interface for route queries.
type Router interface {
	Route(ctx context.Context, start, end Point) (*RouteResult, error)
}

// Engine implements Router over a road graph. Each query allocates its own
// planner, so concurrent calls on a shared graph are safe.
type Engine struct {
	g *graph.RoadGraph
}

// NewEngine creates a routing engine over the given graph.
func NewEngine(g *graph.RoadGraph) *Engine {
	return &Engine{g: g}
}

// Route computes the shortest path between two points. The search itself
// runs to completion once started; ctx is only consulted before it begins.
func (e *Engine) Route(ctx context.Context, start, end Point) (*RouteResult, error) {
	startNode, err := e.g.FindClosest(start.X, start.Y)
	if err != nil {
		return nil, fmt.Errorf("locate start: %w", err)
	}
	endNode, err := e.g.FindClosest(end.X, end.Y)
	if err != nil {
		return nil, fmt.Errorf("locate end: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	planner := NewPlanner(e.g)
	path, distance, err := planner.Search(startNode, endNode)
	if err != nil {
		return nil, err
	}

	return &RouteResult{
		DistanceMeters: distance,
		Path:           path,
	}, nil
}
