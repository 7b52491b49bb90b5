package routing

import "route_planner/pkg/model"

// buildPath walks parent links back from the goal to the parentless start,
// accumulating planar distance, then reverses into start-to-goal order.
// The returned distance is scaled to meters by the graph's metric scale;
// it is zero only for a single-node path.
func (p *Planner) buildPath(goal int32) ([]model.Node, float64) {
	var path []model.Node
	distance := 0.0

	for node := goal; node != noNode; node = p.state.Parent[node] {
		path = append(path, p.g.Node(int(node)))
		if parent := p.state.Parent[node]; parent != noNode {
			distance += p.dist(node, parent)
		}
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, distance * p.g.MetricScale()
}
