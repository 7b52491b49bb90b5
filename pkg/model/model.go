package model

// RoadType classifies a road by its OSM highway value. The order matters:
// roads are sorted ascending so minor categories render underneath major
// ones, and Footway marks ways excluded from vehicle routing.
type RoadType int

const (
	RoadInvalid RoadType = iota
	RoadUnclassified
	RoadService
	RoadResidential
	RoadTertiary
	RoadSecondary
	RoadPrimary
	RoadTrunk
	RoadMotorway
	RoadFootway
)

var roadTypeNames = map[RoadType]string{
	RoadInvalid:      "invalid",
	RoadUnclassified: "unclassified",
	RoadService:      "service",
	RoadResidential:  "residential",
	RoadTertiary:     "tertiary",
	RoadSecondary:    "secondary",
	RoadPrimary:      "primary",
	RoadTrunk:        "trunk",
	RoadMotorway:     "motorway",
	RoadFootway:      "footway",
}

func (t RoadType) String() string {
	if name, ok := roadTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Node is a point in the road network. X and Y are planar map units
// (Mercator projected, translated to the map's min corner, divided by the
// metric scale); Lat and Lon keep the original WGS84 position for output.
type Node struct {
	ID  int
	X   float64
	Y   float64
	Lat float64
	Lon float64
}

// Way is an ordered polyline of node indices into Model.Nodes.
type Way struct {
	Nodes []int
}

// Road classifies one way by category.
type Road struct {
	Way  int
	Type RoadType
}

// Railway wraps a way carrying rail tracks. Kept for rendering only.
type Railway struct {
	Way int
}

// Building is a closed way footprint. Kept for rendering only.
type Building struct {
	Outer []int
}

// Model is the immutable geometry parsed from one OSM document. All slices
// are fixed after Parse returns; consumers reference nodes by index.
type Model struct {
	Nodes     []Node
	Ways      []Way
	Roads     []Road
	Railways  []Railway
	Buildings []Building

	// MetricScale converts planar map units back to meters: it is the
	// shorter projected dimension of the map's bounding box.
	MetricScale float64

	MinLat, MaxLat float64
	MinLon, MaxLon float64
}
