package island

import "github.com/arl/landmass/geom"

// OffMeshLinkKind distinguishes the two flavours of off-mesh edge in
// spec.md §3: engine-synthesised boundary links (from stitching) and
// user-declared animation links (jumps, climbs, doors).
type OffMeshLinkKind int

const (
	BoundaryLink OffMeshLinkKind = iota
	AnimationLink
)

func (k OffMeshLinkKind) String() string {
	if k == AnimationLink {
		return "animation"
	}
	return "boundary"
}

// OffMeshLink is one directed traversal edge between two nodes, stored as
// a pair of symmetric records when bidirectional (spec.md §3, §4.2 step 5
// and §6's AnimationLink).
type OffMeshLink struct {
	ID   OffMeshLinkId
	Kind OffMeshLinkKind

	Start, End NodeRef

	// StartPortal is the edge (in world space) on the Start node through
	// which this link departs; EndPortal is the edge on the End node
	// through which it arrives. For a boundary link these are the same
	// physical segment, endpoints reversed.
	StartPortal, EndPortal [2]geom.Vec3

	Cost float32

	// AnimationKind is the opaque tag matched against an agent's
	// permitted animation links; meaningless for boundary links.
	AnimationKind int
}

// PortalMidpoint2D returns the midpoint of the start portal in the XY
// plane, used by the funnel and by border-obstacle reconstruction.
func (l *OffMeshLink) PortalMidpoint2D() geom.Vec2 {
	return l.StartPortal[0].XY().Lerp(l.StartPortal[1].XY(), 0.5)
}

// ModifiedNode records a polygon's boundary after the footprint of its
// incident off-mesh link portals has been carved out, per spec.md §4.2
// step 6. Each entry in Boundary is a world-space polyline (length >= 2)
// that avoidance treats as a solid wall; the carved-out portal spans are
// omitted entirely since a link portal is where an agent may legally
// leave the polygon.
type ModifiedNode struct {
	Boundary [][]geom.Vec3
}
