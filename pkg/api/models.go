package api

// PointJSON is a position in normalized map units.
type PointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatLngJSON is a WGS84 coordinate pair.
type LatLngJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Start PointJSON `json:"start"`
	End   PointJSON `json:"end"`
}

// RouteResponse is the JSON response for a successful route query.
// Geometry carries the waypoints as lat/lng; Polyline is the same sequence
// Google-encoded for map clients.
type RouteResponse struct {
	DistanceMeters float64      `json:"distance_meters"`
	Waypoints      []PointJSON  `json:"waypoints"`
	Geometry       []LatLngJSON `json:"geometry"`
	Polyline       string       `json:"polyline"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumNodes           int     `json:"num_nodes"`
	NumWays            int     `json:"num_ways"`
	NumRoads           int     `json:"num_roads"`
	RoutableComponents int     `json:"routable_components"`
	LargestComponent   int     `json:"largest_component"`
	MetricScaleMeters  float64 `json:"metric_scale_meters"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
