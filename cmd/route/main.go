package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"route_planner/pkg/graph"
	"route_planner/pkg/model"
	"route_planner/pkg/render"
	"route_planner/pkg/routing"
)

func main() {
	mapPath := flag.String("map", "map.osm", "Path to OSM XML map file")
	startArg := flag.String("start", "", "Start point as x,y percentages of the map extent (0-100)")
	endArg := flag.String("end", "", "End point as x,y percentages of the map extent (0-100)")
	svgPath := flag.String("svg", "", "Optional output path for an SVG rendering of the map and route")
	flag.Parse()

	if *startArg == "" || *endArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: route --map <file.osm> --start x,y --end x,y [--svg out.svg]")
		os.Exit(1)
	}

	startX, startY := parsePercent(*startArg, "start")
	endX, endY := parsePercent(*endArg, "end")

	data, err := os.ReadFile(*mapPath)
	if err != nil {
		log.Fatalf("Failed to read map file: %v", err)
	}
	m, err := model.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse map: %v", err)
	}
	g, err := graph.Build(m)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	engine := routing.NewEngine(g)

	// Percentages convert to map units at the caller, not inside the router.
	result, err := engine.Route(context.Background(),
		routing.Point{X: startX * 0.01, Y: startY * 0.01},
		routing.Point{X: endX * 0.01, Y: endY * 0.01})
	switch {
	case errors.Is(err, routing.ErrNoRoute):
		log.Fatal("No route found between the given points")
	case errors.Is(err, graph.ErrEmptyGraph):
		log.Fatal("Map contains no routable roads")
	case err != nil:
		log.Fatalf("Route failed: %v", err)
	}

	fmt.Printf("Distance: %.1f meters.\n", result.DistanceMeters)
	fmt.Printf("Waypoints: %d\n", len(result.Path))
	for _, n := range result.Path {
		fmt.Printf("  node %d (%.4f, %.4f)\n", n.ID, n.X, n.Y)
	}

	if *svgPath != "" {
		f, err := os.Create(*svgPath)
		if err != nil {
			log.Fatalf("Failed to create SVG file: %v", err)
		}
		defer f.Close()

		renderer := render.New(m)
		if err := renderer.SVG(f, renderer.Extent(), result.Path); err != nil {
			log.Fatalf("Failed to render SVG: %v", err)
		}
		log.Printf("Wrote %s", *svgPath)
	}
}

// parsePercent reads an "x,y" pair and validates the 0-100 range.
func parsePercent(arg, name string) (x, y float64) {
	if _, err := fmt.Sscanf(arg, "%f,%f", &x, &y); err != nil {
		log.Fatalf("Invalid %s %q: expected x,y (e.g. 10,25)", name, arg)
	}
	if x < 0 || x > 100 || y < 0 || y > 100 {
		log.Fatalf("Invalid %s %q: values must be between 0 and 100", name, arg)
	}
	return x, y
}
