package model

import (
	"encoding/xml"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/osm"

	"route_planner/pkg/geo"
)

// ErrNoBounds is returned when the document carries no <bounds> element;
// the metric projection cannot be anchored without it.
var ErrNoBounds = errors.New("map bounds are not defined")

// roadTypes maps OSM highway tag values to internal road categories.
// Values absent from this table are not roads and are dropped.
var roadTypes = map[string]RoadType{
	"motorway":      RoadMotorway,
	"trunk":         RoadTrunk,
	"primary":       RoadPrimary,
	"secondary":     RoadSecondary,
	"tertiary":      RoadTertiary,
	"residential":   RoadResidential,
	"living_street": RoadResidential,
	"service":       RoadService,
	"unclassified":  RoadUnclassified,
	"footway":       RoadFootway,
	"bridleway":     RoadFootway,
	"steps":         RoadFootway,
	"path":          RoadFootway,
	"pedestrian":    RoadFootway,
}

// Parse decodes an OSM XML document and builds the planar map model.
// Node references pointing at ids absent from the document are dropped
// during way assembly rather than failing the whole parse.
func Parse(data []byte) (*Model, error) {
	var doc osm.OSM
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode osm xml: %w", err)
	}
	if doc.Bounds == nil {
		return nil, ErrNoBounds
	}

	m := &Model{
		MinLat: doc.Bounds.MinLat,
		MaxLat: doc.Bounds.MaxLat,
		MinLon: doc.Bounds.MinLon,
		MaxLon: doc.Bounds.MaxLon,
	}

	nodeIdx := make(map[osm.NodeID]int, len(doc.Nodes))
	m.Nodes = make([]Node, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nodeIdx[n.ID] = len(m.Nodes)
		m.Nodes = append(m.Nodes, Node{
			ID:  len(m.Nodes),
			Lat: n.Lat,
			Lon: n.Lon,
		})
	}

	m.Ways = make([]Way, 0, len(doc.Ways))
	for _, w := range doc.Ways {
		wayNum := len(m.Ways)
		way := Way{Nodes: make([]int, 0, len(w.Nodes))}
		for _, wn := range w.Nodes {
			if idx, ok := nodeIdx[wn.ID]; ok {
				way.Nodes = append(way.Nodes, idx)
			}
		}
		m.Ways = append(m.Ways, way)

		if hw := w.Tags.Find("highway"); hw != "" {
			if roadType, ok := roadTypes[hw]; ok {
				m.Roads = append(m.Roads, Road{Way: wayNum, Type: roadType})
			}
		}
		if w.Tags.Find("railway") != "" {
			m.Railways = append(m.Railways, Railway{Way: wayNum})
		}
		if w.Tags.Find("building") != "" {
			m.Buildings = append(m.Buildings, Building{Outer: []int{wayNum}})
		}
	}

	m.adjustCoordinates()

	// Minor categories first; keeps locator iteration and render layering
	// stable across parses of the same document.
	sort.SliceStable(m.Roads, func(i, j int) bool {
		return m.Roads[i].Type < m.Roads[j].Type
	})

	return m, nil
}

// adjustCoordinates projects every node into planar map units anchored at
// the bounding box's min corner. The shorter projected dimension becomes
// the metric scale, so coordinates along that axis span [0, 1].
func (m *Model) adjustCoordinates() {
	minX := geo.MercatorX(m.MinLon)
	minY := geo.MercatorY(m.MinLat)
	dx := geo.MercatorX(m.MaxLon) - minX
	dy := geo.MercatorY(m.MaxLat) - minY

	m.MetricScale = math.Min(dx, dy)
	if m.MetricScale <= 0 {
		m.MetricScale = 1
	}

	for i := range m.Nodes {
		m.Nodes[i].X = (geo.MercatorX(m.Nodes[i].Lon) - minX) / m.MetricScale
		m.Nodes[i].Y = (geo.MercatorY(m.Nodes[i].Lat) - minY) / m.MetricScale
	}
}
