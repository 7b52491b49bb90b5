package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"route_planner/pkg/graph"
	"route_planner/pkg/model"
	"route_planner/pkg/render"
	"route_planner/pkg/routing"
)

// mockRouter implements routing.Router for testing.
type mockRouter struct {
	result *routing.RouteResult
	err    error
}

func (m *mockRouter) Route(ctx context.Context, start, end routing.Point) (*routing.RouteResult, error) {
	return m.result, m.err
}

func okRouter() *mockRouter {
	return &mockRouter{
		result: &routing.RouteResult{
			DistanceMeters: 1234.5,
			Path: []model.Node{
				{ID: 0, X: 0, Y: 0, Lat: 1.300, Lon: 103.800},
				{ID: 1, X: 1, Y: 0, Lat: 1.300, Lon: 103.809},
				{ID: 2, X: 1, Y: 1, Lat: 1.309, Lon: 103.809},
			},
		},
	}
}

func TestHandleRoute_Success(t *testing.T) {
	h := NewHandlers(okRouter(), nil, StatsResponse{NumNodes: 3})

	body := `{"start":{"x":0,"y":0},"end":{"x":1,"y":1}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DistanceMeters != 1234.5 {
		t.Errorf("DistanceMeters = %f, want 1234.5", resp.DistanceMeters)
	}
	if len(resp.Waypoints) != 3 {
		t.Errorf("Waypoints length = %d, want 3", len(resp.Waypoints))
	}
	if len(resp.Geometry) != 3 {
		t.Errorf("Geometry length = %d, want 3", len(resp.Geometry))
	}
	if resp.Polyline == "" {
		t.Error("Polyline is empty")
	}
}

func TestHandleRoute_NoRoute(t *testing.T) {
	h := NewHandlers(&mockRouter{err: routing.ErrNoRoute}, nil, StatsResponse{})

	body := `{"start":{"x":0,"y":0},"end":{"x":5,"y":5}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != "no_route_found" {
		t.Errorf("error = %q, want no_route_found", resp.Error)
	}
}

func TestHandleRoute_EmptyGraph(t *testing.T) {
	h := NewHandlers(&mockRouter{err: graph.ErrEmptyGraph}, nil, StatsResponse{})

	body := `{"start":{"x":0,"y":0},"end":{"x":1,"y":1}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", w.Code)
	}
}

func TestHandleRoute_InvalidJSON(t *testing.T) {
	h := NewHandlers(&mockRouter{}, nil, StatsResponse{})

	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_MissingContentType(t *testing.T) {
	h := NewHandlers(&mockRouter{}, nil, StatsResponse{})

	body := `{"start":{"x":0,"y":0},"end":{"x":1,"y":1}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_NonFiniteCoordinates(t *testing.T) {
	h := NewHandlers(&mockRouter{}, nil, StatsResponse{})

	// JSON numbers cannot express NaN, but a null start decodes to the
	// zero value; a string would fail decoding. Exercise the decode-error
	// path with a type mismatch.
	body := `{"start":{"x":"zero","y":0},"end":{"x":1,"y":1}}`
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&mockRouter{}, nil, StatsResponse{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	stats := StatsResponse{
		NumNodes:           42,
		NumWays:            10,
		NumRoads:           7,
		RoutableComponents: 2,
		LargestComponent:   30,
		MetricScaleMeters:  1111.0,
	}
	h := NewHandlers(&mockRouter{}, nil, stats)

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()

	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp StatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp != stats {
		t.Errorf("stats = %+v, want %+v", resp, stats)
	}
}

func renderTestHandlers(router routing.Router) *Handlers {
	m := &model.Model{MetricScale: 1}
	coords := [][2]float64{{0, 0}, {1, 0}, {1, 1}}
	for i, pos := range coords {
		m.Nodes = append(m.Nodes, model.Node{ID: i, X: pos[0], Y: pos[1]})
	}
	m.Ways = []model.Way{{Nodes: []int{0, 1, 2}}}
	m.Roads = []model.Road{{Way: 0, Type: model.RoadResidential}}
	return NewHandlers(router, render.New(m), StatsResponse{})
}

func TestHandleRender_MapOnly(t *testing.T) {
	h := renderTestHandlers(&mockRouter{})

	req := httptest.NewRequest("GET", "/api/v1/render", nil)
	w := httptest.NewRecorder()

	h.HandleRender(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if !strings.Contains(w.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestHandleRender_WithRoute(t *testing.T) {
	h := renderTestHandlers(okRouter())

	req := httptest.NewRequest("GET", "/api/v1/render?start_x=0&start_y=0&end_x=1&end_y=1", nil)
	w := httptest.NewRecorder()

	h.HandleRender(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "<circle") {
		t.Error("route endpoint markers missing from SVG")
	}
}

func TestHandleRender_PartialParams(t *testing.T) {
	h := renderTestHandlers(&mockRouter{})

	req := httptest.NewRequest("GET", "/api/v1/render?start_x=0&start_y=0", nil)
	w := httptest.NewRecorder()

	h.HandleRender(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRender_NoRenderer(t *testing.T) {
	h := NewHandlers(&mockRouter{}, nil, StatsResponse{})

	req := httptest.NewRequest("GET", "/api/v1/render", nil)
	w := httptest.NewRecorder()

	h.HandleRender(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
