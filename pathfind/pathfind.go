// Package pathfind implements the weighted A* search of spec.md §4.3 over
// a NavData graph: NodeRef vertices, intra-island polygon edges and
// off-mesh links, node-type cost multipliers with per-agent overrides,
// and a region-based early abort gate before the search even starts.
//
// Grounded on detour/query.go's FindPath (open/closed-list A* with an
// early-terminate-at-goal loop and a heuristic-scaled Total cost) and
// detour/nodequeue.go's binary min-heap, re-typed here over NodeRef via
// container/heap instead of Detour's fixed-capacity array heap since the
// graph's size isn't known up front.
package pathfind

import (
	"container/heap"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navpath"
)

// Stats reports the outcome of one FindPath call, per spec.md §4.3.
type Stats struct {
	Success       bool
	ExploredNodes int
}

// cameFrom records the edge used to reach a node during the search: an
// intra-island polygon edge (Edge, LinkUsed false) or an off-mesh link
// (Link, LinkUsed true).
type cameFrom struct {
	from     island.NodeRef
	edge     int
	link     island.OffMeshLinkId
	linkUsed bool
}

// FindPath runs weighted A* from start to end and, on success, funnels
// the predecessor chain into an alternating-segment Path (spec.md §4.3's
// "reconstruct an alternating Path structure ... splitting whenever the
// edge used was an off-mesh link"). startPt and endPt are the agent's and
// target's world positions, stored on the returned Path as its endpoints.
//
// types resolves a node's NodeType cost multiplier; overrides, when
// non-nil, takes priority over types for any NodeType it maps, per the
// per-agent cost override rule of spec.md §4.3. Either may be nil.
func FindPath(nd *island.NavData, start, end island.NodeRef, startPt, endPt geom.Vec3, types *island.NodeTypes, overrides map[island.NodeType]float32) (*navpath.Path, Stats) {
	if start == end {
		return singleNodePath(start, startPt, endPt), Stats{Success: true, ExploredNodes: 1}
	}

	// Early abort: spec.md §4.3's region-based admissibility gate.
	if !nd.AreNodesConnected(start, end) {
		return nil, Stats{Success: false, ExploredNodes: 0}
	}

	gScore := map[island.NodeRef]float32{start: 0}
	prev := map[island.NodeRef]cameFrom{}
	explored := map[island.NodeRef]bool{}

	open := &openList{}
	heap.Init(open)
	startItem := &openItem{node: start, g: 0, f: heuristic(nd, start, end)}
	heap.Push(open, startItem)
	inOpen := map[island.NodeRef]*openItem{start: startItem}

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem)
		delete(inOpen, cur.node)
		if explored[cur.node] {
			continue
		}
		explored[cur.node] = true

		if cur.node == end {
			return reconstructPath(nd, start, end, prev, startPt, endPt), Stats{Success: true, ExploredNodes: len(explored)}
		}

		for _, e := range neighbours(nd, cur.node, types, overrides) {
			if explored[e.to] {
				continue
			}
			tentative := gScore[cur.node] + e.cost
			if g, ok := gScore[e.to]; ok && tentative >= g {
				continue
			}
			gScore[e.to] = tentative
			prev[e.to] = e.via
			f := tentative + heuristic(nd, e.to, end)
			if item, ok := inOpen[e.to]; ok {
				item.g, item.f = tentative, f
				heap.Fix(open, item.index)
			} else {
				item := &openItem{node: e.to, g: tentative, f: f}
				inOpen[e.to] = item
				heap.Push(open, item)
			}
		}
	}

	return nil, Stats{Success: false, ExploredNodes: len(explored)}
}

func singleNodePath(n island.NodeRef, startPt, endPt geom.Vec3) *navpath.Path {
	return &navpath.Path{
		StartPoint: startPt,
		EndPoint:   endPt,
		Segments: []navpath.Segment{
			{Island: &navpath.IslandSegment{Island: n.Island, Corridor: []int{n.Polygon}}},
		},
	}
}

func heuristic(nd *island.NavData, a, b island.NodeRef) float32 {
	aIsl := nd.Island(a.Island)
	bIsl := nd.Island(b.Island)
	if aIsl == nil || bIsl == nil {
		return 0
	}
	return aIsl.WorldCenter(a.Polygon).Dist(bIsl.WorldCenter(b.Polygon))
}

// nodeCost resolves spec.md §4.3's per-tick cost multiplier:
// override_agent.get(type).or(arch.cost(type)).unwrap_or(default_cost).
func nodeCost(nd *island.NavData, nr island.NodeRef, types *island.NodeTypes, overrides map[island.NodeType]float32) float32 {
	isl := nd.Island(nr.Island)
	if isl == nil {
		return island.DefaultCost
	}
	nt, ok := isl.NodeType(nr.Polygon)
	if !ok {
		return island.DefaultCost
	}
	if overrides != nil {
		if c, ok := overrides[nt]; ok {
			return c
		}
	}
	if types != nil {
		if c, ok := types.Cost(nt); ok {
			return c
		}
	}
	return island.DefaultCost
}

type edge struct {
	to   island.NodeRef
	cost float32
	via  cameFrom
}

// neighbours lists nr's outgoing edges: intra-island connectivity (cost
// weighted by both endpoints' node-type multipliers) and every off-mesh
// link departing nr (cost as stored on the link).
func neighbours(nd *island.NavData, nr island.NodeRef, types *island.NodeTypes, overrides map[island.NodeType]float32) []edge {
	var out []edge

	isl := nd.Island(nr.Island)
	if isl != nil && isl.Mesh() != nil && nr.Polygon < len(isl.Mesh().Polygons) {
		poly := isl.Mesh().Polygons[nr.Polygon]
		srcCost := nodeCost(nd, nr, types, overrides)
		for ei, c := range poly.Connectivity {
			if !c.Connected {
				continue
			}
			to := island.NodeRef{Island: nr.Island, Polygon: c.NeighbourPolygon}
			dstCost := nodeCost(nd, to, types, overrides)
			cost := c.TravelDistances[0]*srcCost + c.TravelDistances[1]*dstCost
			out = append(out, edge{to: to, cost: cost, via: cameFrom{from: nr, edge: ei}})
		}
	}

	for _, link := range nd.LinksFrom(nr) {
		out = append(out, edge{to: link.End, cost: link.Cost, via: cameFrom{from: nr, link: link.ID, linkUsed: true}})
	}

	return out
}

// reconstructPath walks prev backwards from end to start and folds the
// resulting hop list into an alternating IslandSegment/OffMeshLinkSegment
// Path, per spec.md §4.3.
func reconstructPath(nd *island.NavData, start, end island.NodeRef, prev map[island.NodeRef]cameFrom, startPt, endPt geom.Vec3) *navpath.Path {
	var nodes []island.NodeRef
	var hops []cameFrom

	cur := end
	for cur != start {
		c := prev[cur]
		nodes = append(nodes, cur)
		hops = append(hops, c)
		cur = c.from
	}
	nodes = append(nodes, start)

	// nodes/hops were collected end-to-start; reverse to start-to-end.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	for i, j := 0, len(hops)-1; i < j; i, j = i+1, j-1 {
		hops[i], hops[j] = hops[j], hops[i]
	}

	path := &navpath.Path{StartPoint: startPt, EndPoint: endPt}
	curIsland := nodes[0].Island
	corridor := []int{nodes[0].Polygon}
	var portalEdges []int

	flush := func() {
		path.Segments = append(path.Segments, navpath.Segment{
			Island: &navpath.IslandSegment{Island: curIsland, Corridor: corridor, PortalEdges: portalEdges},
		})
		corridor, portalEdges = nil, nil
	}

	for i, h := range hops {
		to := nodes[i+1]
		if h.linkUsed {
			flush()
			path.Segments = append(path.Segments, navpath.Segment{
				Link: &navpath.OffMeshLinkSegment{Link: h.link, Start: nodes[i], End: to},
			})
			curIsland = to.Island
			corridor = []int{to.Polygon}
			continue
		}
		portalEdges = append(portalEdges, h.edge)
		corridor = append(corridor, to.Polygon)
	}
	flush()

	return path
}

// openItem is one entry in the A* open list's binary heap.
type openItem struct {
	node  island.NodeRef
	g, f  float32
	index int
}

// openList is a binary min-heap over openItem.f, grounded on
// detour/nodequeue.go's bubbleUp/trickleDown shape but expressed via
// container/heap since the corpus's array-backed nodeQueue assumes a
// fixed a-priori capacity this graph doesn't have.
type openList []*openItem

func (o openList) Len() int            { return len(o) }
func (o openList) Less(i, j int) bool  { return o[i].f < o[j].f }
func (o openList) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index, o[j].index = i, j
}

func (o *openList) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openList) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
