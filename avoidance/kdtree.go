package avoidance

import (
	"sort"

	"github.com/arl/landmass/geom"
)

// kdTree is a static, once-per-tick 2-D point index used for agent- and
// character-neighbour queries, per spec.md §4.6/§9. It replaces the
// teacher's uniform ProximityGrid (crowd/proximity_grid.go) with a
// median-split binary tree: agents and islands can be placed anywhere in
// an unbounded world, unlike Detour's crowd simulation which lives inside
// one bounded tile grid a fixed-cell-size hash grid suits well.
//
// Grounded on the neighbour-query role crowd/proximity_grid.go and
// crowd/local_boundary.go play (distance-pruned candidate collection feeding
// the avoidance solver); the structure itself is the classic balanced
// median-split KD-tree, since no spatial-index dependency in the example
// pack provides one.
type kdTree struct {
	points []geom.Vec2
	nodes  []kdNode
	root   int
}

type kdNode struct {
	pointIdx    int
	axis        int
	left, right int
}

// newKDTree builds a tree over points. The returned tree borrows points by
// index; callers look up payload data via the indices a query returns.
func newKDTree(points []geom.Vec2) *kdTree {
	t := &kdTree{points: points, root: -1}
	if len(points) == 0 {
		return t
	}
	idx := make([]int, len(points))
	for i := range idx {
		idx[i] = i
	}
	t.nodes = make([]kdNode, 0, len(points))
	t.root = t.build(idx, 0)
	return t
}

func (t *kdTree) build(idx []int, depth int) int {
	if len(idx) == 0 {
		return -1
	}
	axis := depth % 2
	sort.Slice(idx, func(i, j int) bool {
		if axis == 0 {
			return t.points[idx[i]].X < t.points[idx[j]].X
		}
		return t.points[idx[i]].Y < t.points[idx[j]].Y
	})
	mid := len(idx) / 2
	nodeIdx := len(t.nodes)
	t.nodes = append(t.nodes, kdNode{pointIdx: idx[mid], axis: axis, left: -1, right: -1})
	left := t.build(idx[:mid], depth+1)
	right := t.build(idx[mid+1:], depth+1)
	t.nodes[nodeIdx].left = left
	t.nodes[nodeIdx].right = right
	return nodeIdx
}

// queryRadius appends to dst the index of every point within radius of
// center (radius inclusive), in unspecified order.
func (t *kdTree) queryRadius(center geom.Vec2, radius float32, dst []int) []int {
	if t.root < 0 {
		return dst
	}
	return t.search(t.root, center, radius*radius, dst)
}

func (t *kdTree) search(n int, center geom.Vec2, radiusSq float32, dst []int) []int {
	if n < 0 {
		return dst
	}
	node := t.nodes[n]
	p := t.points[node.pointIdx]
	if p.DistSqr(center) <= radiusSq {
		dst = append(dst, node.pointIdx)
	}

	var diff float32
	if node.axis == 0 {
		diff = center.X - p.X
	} else {
		diff = center.Y - p.Y
	}

	near, far := node.left, node.right
	if diff > 0 {
		near, far = node.right, node.left
	}
	dst = t.search(near, center, radiusSq, dst)
	if diff*diff <= radiusSq {
		dst = t.search(far, center, radiusSq, dst)
	}
	return dst
}
