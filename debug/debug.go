// Package debug draws an archipelago's current nav data and agent state
// through a caller-supplied visitor, per spec.md §9: polygon boundaries,
// connectivity edges, boundary and animation links, and each agent's
// corridor/target/waypoint. The engine never renders anything itself;
// DrawArchipelagoDebug only ever calls out to a DebugDrawer.
//
// Grounded on recast/dump.go and recast/buildcontext.go's "pass a sink
// object into a dump function" shape (the closest analogue in the
// example pack to a drawer visitor, since the teacher has no debug-render
// trait of its own), and on the PointType/LineType/TriangleType taxonomy
// and draw_archipelago_debug/draw_path of
// original_source/crates/landmass/src/debug.rs, adapted from per-run
// accumulation into one generic visitor call per element.
package debug

import (
	"errors"

	"github.com/arl/landmass/agent"
	"github.com/arl/landmass/archipelago"
	"github.com/arl/landmass/coords"
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

// PointTypeKind distinguishes which per-agent point is being drawn.
type PointTypeKind int

const (
	AgentPosition PointTypeKind = iota
	TargetPosition
	Waypoint
)

// PointType is one drawable point, tagged with the agent it belongs to.
type PointType struct {
	Kind  PointTypeKind
	Agent archipelago.AgentId
}

// LineTypeKind distinguishes which drawable line is being reported.
type LineTypeKind int

const (
	BoundaryEdge LineTypeKind = iota
	ConnectivityEdge
	HeightEdge
	BoundaryLink
	AnimationLinkStart
	AnimationLinkEnd
	AnimationLinkConnection
	AgentCorridor
	CorridorAnimationLink
	Target
	WaypointLine
	PathAnimationLink
)

// LineType is one drawable line. Agent and Link are populated only for
// the kinds that carry them (the per-agent and per-animation-link
// variants); the plain mesh-structure kinds (BoundaryEdge,
// ConnectivityEdge, HeightEdge, BoundaryLink) leave both zero.
type LineType struct {
	Kind  LineTypeKind
	Agent archipelago.AgentId
	Link  archipelago.AnimationLinkId
}

// TriangleTypeKind distinguishes which drawable triangle is being
// reported. Node is the only kind a validated navmesh.Mesh produces.
type TriangleTypeKind int

const (
	Node TriangleTypeKind = iota
)

// TriangleType is one drawable triangle.
type TriangleType struct {
	Kind TriangleTypeKind
}

// DebugDrawer receives every drawable element, expressed in the caller's
// own coordinate type T via the coords.System passed to
// DrawArchipelagoDebug. Implementations are free to ignore any call.
type DebugDrawer[T any] interface {
	AddPoint(pt PointType, p T)
	AddLine(lt LineType, pts [2]T)
	AddTriangle(tt TriangleType, pts [3]T)
}

// ErrNavDataDirty is returned when DrawArchipelagoDebug is called with
// nav data that has pending, unstitched changes: the corridor and link
// graph would be drawn mid-mutation, per spec.md §9.
var ErrNavDataDirty = errors.New("debug: nav data has pending changes, call Update first")

// DrawArchipelagoDebug walks a's islands, links and agents, reporting
// every drawable element to drawer in cs's coordinate type.
func DrawArchipelagoDebug[T any](a *archipelago.Archipelago, cs coords.System[T], drawer DebugDrawer[T]) error {
	if a.NavData.Dirty() {
		return ErrNavDataDirty
	}

	for islandID, isl := range a.NavData.Islands() {
		drawIslandPolygons(a, islandID, isl, cs, drawer)
	}

	for id, ag := range a.Agents() {
		drawAgent(a, id, ag, cs, drawer)
	}

	return nil
}

func drawIslandPolygons[T any](a *archipelago.Archipelago, islandID island.IslandId, isl *island.Island, cs coords.System[T], drawer DebugDrawer[T]) {
	mesh := isl.Mesh()
	if mesh == nil {
		return
	}

	for pi, poly := range mesh.Polygons {
		center := cs.FromInternal(isl.WorldCenter(pi))
		n := len(poly.Vertices)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			va := cs.FromInternal(isl.Transform().ToWorld(mesh.Vertices[poly.Vertices[i]]))
			vb := cs.FromInternal(isl.Transform().ToWorld(mesh.Vertices[poly.Vertices[j]]))
			drawer.AddTriangle(TriangleType{Kind: Node}, [3]T{va, vb, center})
		}

		if mesh.Height != nil && pi < len(mesh.Height.Triangles) {
			for _, tri := range mesh.Height.Triangles[pi] {
				v0 := isl.Transform().ToWorld(geom.V3(tri.A, tri.AZ))
				v1 := isl.Transform().ToWorld(geom.V3(tri.B, tri.BZ))
				v2 := isl.Transform().ToWorld(geom.V3(tri.C, tri.CZ))
				drawer.AddLine(LineType{Kind: HeightEdge}, [2]T{cs.FromInternal(v0), cs.FromInternal(v1)})
				drawer.AddLine(LineType{Kind: HeightEdge}, [2]T{cs.FromInternal(v1), cs.FromInternal(v2)})
				drawer.AddLine(LineType{Kind: HeightEdge}, [2]T{cs.FromInternal(v2), cs.FromInternal(v0)})
			}
		}

		for ei, conn := range poly.Connectivity {
			lineKind := BoundaryEdge
			if conn.Connected {
				// Only draw the edge once, from the lower-indexed polygon.
				if pi > conn.NeighbourPolygon {
					continue
				}
				lineKind = ConnectivityEdge
			}
			p, q := isl.WorldEdgePoints(navmesh.MeshEdgeRef{Polygon: pi, Edge: ei})
			drawer.AddLine(LineType{Kind: lineKind}, [2]T{cs.FromInternal(p), cs.FromInternal(q)})
		}

		nr := island.NodeRef{Island: islandID, Polygon: pi}
		for _, link := range a.NavData.LinksFrom(nr) {
			switch link.Kind {
			case island.BoundaryLink:
				// Only draw once, from the lower node_ref.
				if nodeRefLess(link.End, nr) {
					continue
				}
				drawer.AddLine(LineType{Kind: BoundaryLink}, [2]T{
					cs.FromInternal(link.StartPortal[0]), cs.FromInternal(link.StartPortal[1]),
				})
			case island.AnimationLink:
				animID := archipelago.AnimationLinkId(link.ID)
				drawer.AddLine(LineType{Kind: AnimationLinkStart, Link: animID}, [2]T{
					cs.FromInternal(link.StartPortal[0]), cs.FromInternal(link.StartPortal[1]),
				})
				drawer.AddLine(LineType{Kind: AnimationLinkEnd, Link: animID}, [2]T{
					cs.FromInternal(link.EndPortal[0]), cs.FromInternal(link.EndPortal[1]),
				})
				startMid := link.StartPortal[0].Lerp(link.StartPortal[1], 0.5)
				endMid := link.EndPortal[0].Lerp(link.EndPortal[1], 0.5)
				drawer.AddLine(LineType{Kind: AnimationLinkConnection, Link: animID}, [2]T{
					cs.FromInternal(startMid), cs.FromInternal(endMid),
				})
			}
		}
	}
}

func nodeRefLess(a, b island.NodeRef) bool {
	if a.Island != b.Island {
		return uuidLess(a.Island, b.Island)
	}
	return a.Polygon < b.Polygon
}

func uuidLess(a, b island.IslandId) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func drawAgent[T any](a *archipelago.Archipelago, id archipelago.AgentId, ag *agent.Agent, cs coords.System[T], drawer DebugDrawer[T]) {
	if ag.Paused || ag.UsingAnimationLink {
		return
	}

	pos := cs.FromInternal(ag.Position)
	drawer.AddPoint(PointType{Kind: AgentPosition, Agent: id}, pos)

	if ag.Target.Kind != agent.TargetNone {
		target := cs.FromInternal(ag.Target.Point)
		drawer.AddLine(LineType{Kind: Target, Agent: id}, [2]T{pos, target})
		drawer.AddPoint(PointType{Kind: TargetPosition, Agent: id}, target)
	}

	if ag.Path != nil {
		drawPath(a, id, ag, cs, drawer)
	}
}

func drawPath[T any](a *archipelago.Archipelago, id archipelago.AgentId, ag *agent.Agent, cs coords.System[T], drawer DebugDrawer[T]) {
	path := ag.Path
	lastPoint := cs.FromInternal(path.StartPoint)

	for _, seg := range path.Segments {
		switch {
		case seg.Island != nil:
			isl := a.NavData.Island(seg.Island.Island)
			if isl == nil {
				continue
			}
			for i, polyIdx := range seg.Island.Corridor {
				if i >= len(seg.Island.PortalEdges) {
					break
				}
				edgeIdx := seg.Island.PortalEdges[i]
				p, q := isl.WorldEdgePoints(navmesh.MeshEdgeRef{Polygon: polyIdx, Edge: edgeIdx})
				next := cs.FromInternal(p.Lerp(q, 0.5))
				drawer.AddLine(LineType{Kind: AgentCorridor, Agent: id}, [2]T{lastPoint, next})
				lastPoint = next
			}
		case seg.Link != nil:
			link, ok := a.NavData.OffMeshLink(seg.Link.Link)
			if !ok {
				continue
			}
			start := cs.FromInternal(link.StartPortal[0].Lerp(link.StartPortal[1], 0.5))
			end := cs.FromInternal(link.EndPortal[0].Lerp(link.EndPortal[1], 0.5))

			kind := AgentCorridor
			if link.Kind == island.AnimationLink {
				kind = CorridorAnimationLink
			}
			animID := archipelago.AnimationLinkId(link.ID)
			drawer.AddLine(LineType{Kind: kind, Agent: id, Link: animID}, [2]T{lastPoint, start})
			if link.Kind == island.AnimationLink {
				drawer.AddLine(LineType{Kind: PathAnimationLink, Agent: id, Link: animID}, [2]T{start, end})
			}
			lastPoint = end
		}
	}

	drawer.AddLine(LineType{Kind: WaypointLine, Agent: id}, [2]T{lastPoint, cs.FromInternal(ag.Target.Point)})
}
