package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/rtree"

	"route_planner/pkg/model"
)

// svgWidth is the pixel width of the emitted document; height follows the
// viewport's aspect ratio.
const svgWidth = 800.0

type style struct {
	stroke string
	width  float64
	dash   string
}

// roadStyles follows the usual slippy-map palette, major roads warmer.
var roadStyles = map[model.RoadType]style{
	model.RoadMotorway:     {stroke: "#e892a2", width: 0.010},
	model.RoadTrunk:        {stroke: "#f9b29c", width: 0.009},
	model.RoadPrimary:      {stroke: "#fcd6a4", width: 0.008},
	model.RoadSecondary:    {stroke: "#f7fabf", width: 0.007},
	model.RoadTertiary:     {stroke: "#e8e8e8", width: 0.006},
	model.RoadResidential:  {stroke: "#dddddd", width: 0.005},
	model.RoadService:      {stroke: "#d5d5d5", width: 0.003},
	model.RoadUnclassified: {stroke: "#d5d5d5", width: 0.004},
	model.RoadFootway:      {stroke: "#fa8072", width: 0.002, dash: "0.01,0.008"},
}

const (
	backgroundFill = "#f2efe9"
	buildingFill   = "#d9d0c9"
	railStroke     = "#808080"
	railDash       = "0.02,0.01"
	routeStroke    = "#4a89f3"
	routeWidth     = 0.012
)

// Viewport is an axis-aligned box in map units.
type Viewport struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Renderer draws a parsed map, and optionally a route, as SVG. Ways are
// indexed by bounding box in R-trees so only features intersecting the
// requested viewport are emitted.
type Renderer struct {
	m         *model.Model
	roads     rtree.RTreeG[int] // values index m.Roads
	railways  rtree.RTreeG[int] // values index m.Railways
	buildings rtree.RTreeG[int] // values index m.Buildings
	extent    Viewport
}

// New indexes the model's features. The model must not change afterwards.
func New(m *model.Model) *Renderer {
	r := &Renderer{m: m}

	for i, road := range m.Roads {
		if min, max, ok := r.wayBounds(road.Way); ok {
			r.roads.Insert(min, max, i)
		}
	}
	for i, railway := range m.Railways {
		if min, max, ok := r.wayBounds(railway.Way); ok {
			r.railways.Insert(min, max, i)
		}
	}
	for i, building := range m.Buildings {
		if min, max, ok := r.ringBounds(building.Outer); ok {
			r.buildings.Insert(min, max, i)
		}
	}

	r.extent = Viewport{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, n := range m.Nodes {
		r.extent.MinX = math.Min(r.extent.MinX, n.X)
		r.extent.MinY = math.Min(r.extent.MinY, n.Y)
		r.extent.MaxX = math.Max(r.extent.MaxX, n.X)
		r.extent.MaxY = math.Max(r.extent.MaxY, n.Y)
	}
	if len(m.Nodes) == 0 {
		r.extent = Viewport{MaxX: 1, MaxY: 1}
	}

	return r
}

// Extent returns the viewport covering every node of the map.
func (r *Renderer) Extent() Viewport { return r.extent }

// SVG writes the map clipped to the viewport. When route is non-empty it is
// drawn on top as a highlighted polyline with endpoint markers.
func (r *Renderer) SVG(w io.Writer, view Viewport, route []model.Node) error {
	spanX := view.MaxX - view.MinX
	spanY := view.MaxY - view.MinY
	if spanX <= 0 || spanY <= 0 {
		return fmt.Errorf("degenerate viewport %+v", view)
	}

	scale := svgWidth / spanX
	height := spanY * scale

	// Map y grows north, SVG y grows down.
	toX := func(x float64) float64 { return (x - view.MinX) * scale }
	toY := func(y float64) float64 { return (view.MaxY - y) * scale }

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		svgWidth, height, svgWidth, height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundFill)

	min := [2]float64{view.MinX, view.MinY}
	max := [2]float64{view.MaxX, view.MaxY}

	for _, i := range r.visible(&r.buildings, min, max) {
		for _, way := range r.m.Buildings[i].Outer {
			if pts := r.points(way, toX, toY); pts != "" {
				fmt.Fprintf(bw, `<polygon points="%s" fill="%s"/>`+"\n", pts, buildingFill)
			}
		}
	}

	for _, i := range r.visible(&r.railways, min, max) {
		if pts := r.points(r.m.Railways[i].Way, toX, toY); pts != "" {
			fmt.Fprintf(bw, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-dasharray="%s"/>`+"\n",
				pts, railStroke, 0.004*scale, scaleDash(railDash, scale))
		}
	}

	// Road indices ascend with category (the model sorts them), so drawing
	// in index order layers major roads over minor ones.
	for _, i := range r.visible(&r.roads, min, max) {
		road := r.m.Roads[i]
		st, ok := roadStyles[road.Type]
		if !ok {
			continue
		}
		pts := r.points(road.Way, toX, toY)
		if pts == "" {
			continue
		}
		if st.dash != "" {
			fmt.Fprintf(bw, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-dasharray="%s" stroke-linecap="round"/>`+"\n",
				pts, st.stroke, st.width*scale, scaleDash(st.dash, scale))
		} else {
			fmt.Fprintf(bw, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round"/>`+"\n",
				pts, st.stroke, st.width*scale)
		}
	}

	if len(route) > 0 {
		var sb strings.Builder
		for i, n := range route {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%.2f,%.2f", toX(n.X), toY(n.Y))
		}
		fmt.Fprintf(bw, `<polyline points="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
			sb.String(), routeStroke, routeWidth*scale)

		first := route[0]
		last := route[len(route)-1]
		fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="#2ecc40"/>`+"\n",
			toX(first.X), toY(first.Y), routeWidth*scale)
		fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="#ff4136"/>`+"\n",
			toX(last.X), toY(last.Y), routeWidth*scale)
	}

	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// visible collects the tree values intersecting the box, in ascending order
// for stable layering.
func (r *Renderer) visible(tr *rtree.RTreeG[int], min, max [2]float64) []int {
	var out []int
	tr.Search(min, max, func(_, _ [2]float64, value int) bool {
		out = append(out, value)
		return true
	})
	sort.Ints(out)
	return out
}

// points renders a way's node positions as an SVG points attribute.
func (r *Renderer) points(way int, toX, toY func(float64) float64) string {
	nodes := r.m.Ways[way].Nodes
	if len(nodes) < 2 {
		return ""
	}
	var sb strings.Builder
	for i, idx := range nodes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		n := r.m.Nodes[idx]
		fmt.Fprintf(&sb, "%.2f,%.2f", toX(n.X), toY(n.Y))
	}
	return sb.String()
}

func (r *Renderer) wayBounds(way int) (min, max [2]float64, ok bool) {
	return r.nodeBounds(r.m.Ways[way].Nodes)
}

func (r *Renderer) ringBounds(ways []int) (min, max [2]float64, ok bool) {
	var all []int
	for _, w := range ways {
		all = append(all, r.m.Ways[w].Nodes...)
	}
	return r.nodeBounds(all)
}

func (r *Renderer) nodeBounds(nodes []int) (min, max [2]float64, ok bool) {
	if len(nodes) == 0 {
		return min, max, false
	}
	min = [2]float64{math.Inf(1), math.Inf(1)}
	max = [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, idx := range nodes {
		n := r.m.Nodes[idx]
		min[0] = math.Min(min[0], n.X)
		min[1] = math.Min(min[1], n.Y)
		max[0] = math.Max(max[0], n.X)
		max[1] = math.Max(max[1], n.Y)
	}
	return min, max, true
}

// scaleDash converts a dash pattern in map units to pixels.
func scaleDash(dash string, scale float64) string {
	parts := strings.Split(dash, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		var v float64
		fmt.Sscanf(p, "%f", &v)
		out[i] = fmt.Sprintf("%.2f", v*scale)
	}
	return strings.Join(out, ",")
}
