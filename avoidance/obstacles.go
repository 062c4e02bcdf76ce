package avoidance

import (
	"container/heap"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

// obstacle is one solid, static wall segment in the querying agent's local
// frame (origin at the agent's own position). collectBorderObstacles emits
// each counter-clockwise polygon edge reversed, so the walkable side is to
// the right of A->B; Apply uses only the segment's nearest point to the
// agent, so the orientation does not affect the solved velocity.
type obstacle struct {
	A, B geom.Vec2
}

// collectBorderObstacles implements spec.md §4.6's border-wall gathering:
// a best-first sweep outward from the agent's own node over polygon
// connectivity (and boundary-kind off-mesh links, which are traversable
// but still worth exploring through), bounded by distanceLimit, collecting
// every solid boundary segment encountered along the way.
//
// Grounded on the exploration shape of
// original_source/crates/landmass/src/avoidance.rs's ExploreNode
// (a score-ordered heap walk from the agent's node, expanding through
// connected edges within the distance limit and emitting unconnected or
// carved boundary as obstacle geometry) -- adapted here to a min-heap over
// Go's container/heap instead of ExploreNode's negated-score max-heap, and
// simplified to not stitch adjoining segments into closed visibility
// chains: each wall edge becomes its own independent obstacle. A true
// visibility-set union isn't needed for ORCA's half-plane construction
// (RVO2 itself treats multi-segment obstacles edge by edge internally),
// and no half-plane/polygon-union library exists anywhere in the example
// pack to build one from scratch cheaply.
func collectBorderObstacles(nd *island.NavData, start island.NodeRef, agentPoint geom.Vec2, distanceLimit float32) []obstacle {
	limitSq := distanceLimit * distanceLimit
	explored := map[island.NodeRef]bool{start: false}

	pq := &frontier{{node: start, score: 0}}
	heap.Init(pq)

	var segments []obstacle

	emit := func(a, b geom.Vec3) {
		segments = append(segments, obstacle{A: b.XY().Sub(agentPoint), B: a.XY().Sub(agentPoint)})
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*frontierItem)
		if explored[item.node] {
			continue
		}
		explored[item.node] = true

		isl := nd.Island(item.node.Island)
		if isl == nil || isl.Mesh() == nil || item.node.Polygon >= len(isl.Mesh().Polygons) {
			continue
		}
		poly := isl.Mesh().Polygons[item.node.Polygon]

		mn, hasModified := nd.ModifiedNode(item.node)
		if hasModified {
			for _, line := range mn.Boundary {
				for i := 0; i+1 < len(line); i++ {
					emit(line[i], line[i+1])
				}
			}
		}

		for ei, c := range poly.Connectivity {
			a, b := isl.WorldEdgePoints(navmesh.MeshEdgeRef{Polygon: item.node.Polygon, Edge: ei})

			if !c.Connected {
				// An island without any off-mesh links touching it has no
				// ModifiedNode entry at all; its boundary edges are plain
				// walls. Islands with a ModifiedNode already emitted their
				// (carved) boundary above.
				if !hasModified {
					emit(a, b)
				}
				continue
			}

			near := minDistSq(a.XY(), b.XY(), agentPoint)
			if near > limitSq {
				continue
			}
			neighbour := island.NodeRef{Island: item.node.Island, Polygon: c.NeighbourPolygon}
			if !explored[neighbour] {
				heap.Push(pq, &frontierItem{node: neighbour, score: near})
			}
		}

		for _, link := range nd.LinksFrom(item.node) {
			if link.Kind != island.BoundaryLink {
				continue
			}
			d := link.PortalMidpoint2D().Sub(agentPoint).LenSqr()
			if d > limitSq {
				continue
			}
			if !explored[link.End] {
				heap.Push(pq, &frontierItem{node: link.End, score: d})
			}
		}
	}

	return segments
}

func minDistSq(a, b, p geom.Vec2) float32 {
	da, db := a.DistSqr(p), b.DistSqr(p)
	if da < db {
		return da
	}
	return db
}

// frontierItem is one pending node in collectBorderObstacles's best-first
// sweep, ordered by the squared distance from the agent to the nearer
// endpoint of the edge that discovered it, or to the portal midpoint of the
// boundary link that did (closer first, the same priority ExploreNode uses
// via its negated-score max-heap).
type frontierItem struct {
	node  island.NodeRef
	score float32
	index int
}

type frontier []*frontierItem

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].score < f[j].score }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i]; f[i].index, f[j].index = i, j }
func (f *frontier) Push(x any) {
	item := x.(*frontierItem)
	item.index = len(*f)
	*f = append(*f, item)
}
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return item
}
