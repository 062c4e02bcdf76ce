// Package navpath represents a found route as an alternating sequence of
// island corridor segments and off-mesh-link segments, and answers
// incremental "next waypoint" queries against it via a funnel algorithm,
// per spec.md §4.4.
//
// Grounded on detour/query.go's FindStraightPath and its portal helpers
// (portalPoints6/8, appendPortals), generalized to cross island boundaries
// (each portal projected through its owning island's transform) and to
// flush an AnimationLink step instead of a plain vertex when the corridor
// crosses an off-mesh-link segment.
package navpath

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
)

// IslandSegment is a contiguous run of connected polygons within a single
// island: corridor holds one entry per polygon visited, portalEdges one
// entry per adjacent pair, per spec.md §4.4's invariant
// len(Corridor) == len(PortalEdges)+1.
type IslandSegment struct {
	Island      island.IslandId
	Corridor    []int
	PortalEdges []int
}

// OffMeshLinkSegment bridges two IslandSegments via the off-mesh link
// that was used to travel between them.
type OffMeshLinkSegment struct {
	Link  island.OffMeshLinkId
	Start island.NodeRef
	End   island.NodeRef
}

// Segment is exactly one of Island or Link, never both.
type Segment struct {
	Island *IslandSegment
	Link   *OffMeshLinkSegment
}

// Path is a found route: an alternating sequence of island segments and
// off-mesh-link segments, plus its world-space endpoints.
type Path struct {
	Segments   []Segment
	StartPoint geom.Vec3
	EndPoint   geom.Vec3
}

// PathIndex addresses one portal within one island segment of a Path.
type PathIndex struct {
	SegmentIndex int
	PortalIndex  int
}

// IsValid reports false if any island segment's island, or any
// off-mesh-link segment's link, appears in the respective invalidated
// set (spec.md §4.4).
func (p *Path) IsValid(invalidatedLinks map[island.OffMeshLinkId]bool, invalidatedIslands map[island.IslandId]bool) bool {
	for _, seg := range p.Segments {
		switch {
		case seg.Island != nil:
			if invalidatedIslands[seg.Island.Island] {
				return false
			}
		case seg.Link != nil:
			if invalidatedLinks[seg.Link.Link] {
				return false
			}
		}
	}
	return true
}

// FindIndexOfNode returns the first PathIndex whose island segment
// contains node, searching from the start.
func (p *Path) FindIndexOfNode(node island.NodeRef) (PathIndex, bool) {
	for si, seg := range p.Segments {
		if seg.Island == nil || seg.Island.Island != node.Island {
			continue
		}
		for pi, poly := range seg.Island.Corridor {
			if poly == node.Polygon {
				return PathIndex{SegmentIndex: si, PortalIndex: pi}, true
			}
		}
	}
	return PathIndex{}, false
}

// FindIndexOfNodeRev is FindIndexOfNode searching from the end, for
// callers that want the furthest-along occurrence of a (possibly
// revisited) node.
func (p *Path) FindIndexOfNodeRev(node island.NodeRef) (PathIndex, bool) {
	for si := len(p.Segments) - 1; si >= 0; si-- {
		seg := p.Segments[si]
		if seg.Island == nil || seg.Island.Island != node.Island {
			continue
		}
		for pi := len(seg.Island.Corridor) - 1; pi >= 0; pi-- {
			if seg.Island.Corridor[pi] == node.Polygon {
				return PathIndex{SegmentIndex: si, PortalIndex: pi}, true
			}
		}
	}
	return PathIndex{}, false
}
