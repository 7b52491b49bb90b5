package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"
	"strconv"

	"github.com/twpayne/go-polyline"

	"route_planner/pkg/graph"
	"route_planner/pkg/render"
	"route_planner/pkg/routing"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router   routing.Router
	renderer *render.Renderer
	stats    StatsResponse
}

// NewHandlers creates handlers with the given router and renderer. The
// renderer may be nil, in which case the render endpoint reports 404.
func NewHandlers(router routing.Router, renderer *render.Renderer, stats StatsResponse) *Handlers {
	return &Handlers{
		router:   router,
		renderer: renderer,
		stats:    stats,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	if !validPoint(req.Start) {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "start")
		return
	}
	if !validPoint(req.End) {
		writeError(w, http.StatusBadRequest, "invalid_coordinates", "end")
		return
	}

	result, err := h.router.Route(r.Context(),
		routing.Point{X: req.Start.X, Y: req.Start.Y},
		routing.Point{X: req.End.X, Y: req.End.Y})
	if err != nil {
		writeRouteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(routeResponse(result))
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

// HandleRender handles GET /api/v1/render. With start_x/start_y/end_x/end_y
// query parameters present, the computed route is drawn on the map.
func (h *Handlers) HandleRender(w http.ResponseWriter, r *http.Request) {
	if h.renderer == nil {
		writeError(w, http.StatusNotFound, "render_unavailable", "")
		return
	}

	q := r.URL.Query()
	keys := []string{"start_x", "start_y", "end_x", "end_y"}
	present := 0
	coords := make([]float64, len(keys))
	for i, key := range keys {
		raw := q.Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", key)
			return
		}
		coords[i] = v
		present++
	}
	if present != 0 && present != len(keys) {
		writeError(w, http.StatusBadRequest, "invalid_request", "start_x,start_y,end_x,end_y")
		return
	}

	var route *routing.RouteResult
	if present == len(keys) {
		var err error
		route, err = h.router.Route(r.Context(),
			routing.Point{X: coords[0], Y: coords[1]},
			routing.Point{X: coords[2], Y: coords[3]})
		if err != nil {
			writeRouteError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if route != nil {
		// Headers are already out; a write failure here just drops the body.
		_ = h.renderer.SVG(w, h.renderer.Extent(), route.Path)
		return
	}
	_ = h.renderer.SVG(w, h.renderer.Extent(), nil)
}

func routeResponse(result *routing.RouteResult) RouteResponse {
	resp := RouteResponse{
		DistanceMeters: result.DistanceMeters,
		Waypoints:      make([]PointJSON, len(result.Path)),
		Geometry:       make([]LatLngJSON, len(result.Path)),
	}
	coords := make([][]float64, len(result.Path))
	for i, n := range result.Path {
		resp.Waypoints[i] = PointJSON{X: n.X, Y: n.Y}
		resp.Geometry[i] = LatLngJSON{Lat: n.Lat, Lng: n.Lon}
		coords[i] = []float64{n.Lat, n.Lon}
	}
	resp.Polyline = string(polyline.EncodeCoords(coords))
	return resp
}

func writeRouteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, graph.ErrEmptyGraph):
		writeError(w, http.StatusUnprocessableEntity, "empty_graph", "")
	case errors.Is(err, routing.ErrNoRoute):
		writeError(w, http.StatusNotFound, "no_route_found", "")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "")
	}
}

func validPoint(p PointJSON) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) &&
		!math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
