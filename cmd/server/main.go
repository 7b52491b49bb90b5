package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"route_planner/pkg/api"
	"route_planner/pkg/graph"
	"route_planner/pkg/model"
	"route_planner/pkg/render"
	"route_planner/pkg/routing"
)

func main() {
	mapPath := flag.String("map", "map.osm", "Path to OSM XML map file")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("Reading map data from %s...", *mapPath)
	data, err := os.ReadFile(*mapPath)
	if err != nil {
		log.Fatalf("Failed to read map file: %v", err)
	}

	log.Println("Parsing OSM data...")
	m, err := model.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse map: %v", err)
	}
	log.Printf("Parsed: %d nodes, %d ways, %d roads (metric scale %.1f m)",
		len(m.Nodes), len(m.Ways), len(m.Roads), m.MetricScale)

	log.Println("Building road graph index...")
	g, err := graph.Build(m)
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	components, largest := g.RoutableComponents()
	log.Printf("Routable subgraph: %d components, largest %d nodes", components, largest)
	if components > 1 {
		log.Printf("Warning: disconnected road network; some queries will find no route")
	}

	engine := routing.NewEngine(g)
	renderer := render.New(m)

	loadTime := time.Since(start)
	log.Printf("Ready in %s", loadTime.Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes:           len(m.Nodes),
		NumWays:            len(m.Ways),
		NumRoads:           len(m.Roads),
		RoutableComponents: components,
		LargestComponent:   largest,
		MetricScaleMeters:  m.MetricScale,
	}

	handlers := api.NewHandlers(engine, renderer, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
