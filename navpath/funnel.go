package navpath

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

// StraightPathStepKind distinguishes a plain waypoint from an off-mesh
// traversal instruction.
type StraightPathStepKind int

const (
	StepWaypoint StraightPathStepKind = iota
	StepAnimationLink
)

// StraightPathStep is the result of one FindNextPointInStraightPath call:
// either a Waypoint (Point set) or an AnimationLink instruction (the rest
// of the fields set), per spec.md §4.4.
type StraightPathStep struct {
	Kind StraightPathStepKind

	// Point is valid when Kind == StepWaypoint.
	Point geom.Vec3

	// The remaining fields are valid when Kind == StepAnimationLink.
	StartPoint, EndPoint geom.Vec3
	Link                 island.OffMeshLinkId
	StartNode, EndNode   island.NodeRef
}

// portal is one crossable boundary in world space, with a consistent
// left/right split relative to the direction of travel.
type portal struct {
	left, right geom.Vec3
	idx         PathIndex // the PathIndex landing on the far side of this portal
}

// FindNextPointInStraightPath implements spec.md §4.4: a classic
// left/right funnel over the corridor's portal edges between startIdx and
// endIdx, each portal's endpoints projected to world space through their
// owning island's transform. The funnel tightens as new portals are
// folded in; the moment a new portal vertex crosses the opposite funnel
// edge, that opposite vertex is returned as the next waypoint. Crossing
// into an off-mesh-link segment instead flushes an AnimationLink step
// whose endpoints are the current apex projected onto the link's start
// and end portals.
//
// Grounded on detour/query.go's FindStraightPath (apex/left/right
// tightening loop and its portalPoints6/8 helpers), adapted to return one
// incremental step at a time instead of the whole path, the way a crowd
// agent asks its corridor for just the next corner.
func FindNextPointInStraightPath(nd *island.NavData, path *Path, startIdx PathIndex, startPt geom.Vec3, endIdx PathIndex, endPt geom.Vec3) (PathIndex, StraightPathStep) {
	if startIdx == endIdx {
		return endIdx, StraightPathStep{Kind: StepWaypoint, Point: endPt}
	}

	portals, linkAt := collectPortals(nd, path, startIdx, endIdx, endPt)

	apex := startPt
	apexIdx := startIdx
	var left, right geom.Vec3
	leftIdx, rightIdx := startIdx, startIdx
	haveLeft, haveRight := false, false

	for i, p := range portals {
		if link, ok := linkAt[i]; ok {
			sp := clipPointToSegment(apex, link.StartPortal[0], link.StartPortal[1])
			ep := clipPointToSegment(apex, link.EndPortal[0], link.EndPortal[1])
			nextIdx := p.idx
			return nextIdx, StraightPathStep{
				Kind: StepAnimationLink, StartPoint: sp, EndPoint: ep,
				Link: link.ID, StartNode: link.Start, EndNode: link.End,
			}
		}

		// Tighten the right side: p.right may narrow the funnel, or it may
		// have crossed over to the left of the apex-left edge, in which
		// case the left vertex is the next waypoint.
		if !haveRight || apex.XY() == right.XY() {
			right, rightIdx, haveRight = p.right, p.idx, true
		} else if geom.SignedArea2(apex.XY(), right.XY(), p.right.XY()) < 0 {
			// p.right widens the funnel: keep the current right vertex.
		} else if !haveLeft || geom.SignedArea2(apex.XY(), left.XY(), p.right.XY()) > 0 {
			apex, apexIdx = left, leftIdx
			haveLeft, haveRight = false, false
			if apexIdx != startIdx {
				return apexIdx, StraightPathStep{Kind: StepWaypoint, Point: apex}
			}
			right, rightIdx, haveRight = p.right, p.idx, true
		} else {
			right, rightIdx, haveRight = p.right, p.idx, true
		}

		// Tighten the left side, symmetrically.
		if !haveLeft || apex.XY() == left.XY() {
			left, leftIdx, haveLeft = p.left, p.idx, true
		} else if geom.SignedArea2(apex.XY(), left.XY(), p.left.XY()) > 0 {
			// p.left widens the funnel: keep the current left vertex.
		} else if !haveRight || geom.SignedArea2(apex.XY(), right.XY(), p.left.XY()) < 0 {
			apex, apexIdx = right, rightIdx
			haveLeft, haveRight = false, false
			if apexIdx != startIdx {
				return apexIdx, StraightPathStep{Kind: StepWaypoint, Point: apex}
			}
			left, leftIdx, haveLeft = p.left, p.idx, true
		} else {
			left, leftIdx, haveLeft = p.left, p.idx, true
		}
	}

	return endIdx, StraightPathStep{Kind: StepWaypoint, Point: endPt}
}

// collectPortals flattens the path's island-segment portal edges (and the
// link segments between them) from startIdx to endIdx into world space,
// followed by endPt as a zero-width final portal. linkAt[i] is set when
// portals[i] represents crossing into a link segment rather than an
// intra-island portal.
func collectPortals(nd *island.NavData, path *Path, startIdx, endIdx PathIndex, endPt geom.Vec3) ([]portal, map[int]*island.OffMeshLink) {
	var portals []portal
	linkAt := make(map[int]*island.OffMeshLink)

	for si := startIdx.SegmentIndex; si <= endIdx.SegmentIndex && si < len(path.Segments); si++ {
		seg := path.Segments[si]
		if seg.Link != nil {
			link, _ := nd.OffMeshLink(seg.Link.Link)
			portals = append(portals, portal{idx: PathIndex{SegmentIndex: si + 1, PortalIndex: 0}})
			linkAt[len(portals)-1] = link
			continue
		}

		islSeg := seg.Island
		isl := nd.Island(islSeg.Island)
		if isl == nil {
			continue
		}

		from := 0
		if si == startIdx.SegmentIndex {
			from = startIdx.PortalIndex
		}
		to := len(islSeg.PortalEdges)
		if si == endIdx.SegmentIndex {
			to = endIdx.PortalIndex
		}
		for pi := from; pi < to; pi++ {
			edge := islSeg.PortalEdges[pi]
			v0, v1 := isl.WorldEdgePoints(navmesh.MeshEdgeRef{Polygon: islSeg.Corridor[pi], Edge: edge})
			portals = append(portals, portal{
				right: v0, left: v1,
				idx: PathIndex{SegmentIndex: si, PortalIndex: pi + 1},
			})
		}
	}
	portals = append(portals, portal{left: endPt, right: endPt, idx: endIdx})
	return portals, linkAt
}

// clipPointToSegment projects p onto segment (a,b) and clamps to it.
func clipPointToSegment(p, a, b geom.Vec3) geom.Vec3 {
	ab := b.Sub(a)
	denom := ab.X*ab.X + ab.Y*ab.Y + ab.Z*ab.Z
	t := float32(0)
	if denom > 1e-12 {
		ap := p.Sub(a)
		t = (ap.X*ab.X + ap.Y*ab.Y + ap.Z*ab.Z) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	return a.Lerp(b, t)
}
