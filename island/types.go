// Package island owns the set of islands placed in a shared world, the
// off-mesh links stitching and jumping between them, and the dynamic graph
// update that keeps both in sync with island movement (spec.md §3, §4.2).
package island

import (
	"github.com/google/uuid"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
	"github.com/arl/math32"
)

// IslandId, NodeType and OffMeshLinkId are opaque per-archipelago
// identifiers (spec.md §3). Backing them with uuid.UUID (a real dependency
// also reached for by the example pack's entity-handle code in
// Gekko3D-gekko) keeps every handle comparable, zero-value-safe (the nil
// UUID never collides with a real id) and free of the reuse-after-free
// hazards a plain recycled-slot-index handle would have across
// add/remove/add cycles.
type IslandId uuid.UUID
type NodeType uuid.UUID
type OffMeshLinkId uuid.UUID

func NewIslandId() IslandId       { return IslandId(uuid.New()) }
func NewNodeType() NodeType       { return NodeType(uuid.New()) }
func NewOffMeshLinkId() OffMeshLinkId { return OffMeshLinkId(uuid.New()) }

// NodeRef is a globally unique handle to one polygon, per spec.md §3.
type NodeRef struct {
	Island  IslandId
	Polygon int
}

// MeshEdgeRef identifies a polygon edge within an island's mesh, mirroring
// navmesh.MeshEdgeRef but scoped to a specific island for use in world
// space contexts (portal stitching, modified-node carve-outs).
type MeshEdgeRef struct {
	Island IslandId
	navmesh.MeshEdgeRef
}

// Transform places an island's local mesh in world space: a translation
// plus a rotation about the vertical (Z) axis, per spec.md §3.
type Transform struct {
	Translation geom.Vec3
	// RotationRadians is the rotation about the vertical axis.
	RotationRadians float32
}

// Identity is the zero-rotation, zero-translation transform.
var Identity = Transform{}

// ToWorld maps a point from the island's local mesh space to world space.
func (t Transform) ToWorld(p geom.Vec3) geom.Vec3 {
	c, s := math32.Cos(t.RotationRadians), math32.Sin(t.RotationRadians)
	x := p.X*c - p.Y*s
	y := p.X*s + p.Y*c
	return geom.Vec3{X: x + t.Translation.X, Y: y + t.Translation.Y, Z: p.Z + t.Translation.Z}
}

// ToLocal maps a point from world space back into the island's local mesh
// space; the inverse of ToWorld.
func (t Transform) ToLocal(p geom.Vec3) geom.Vec3 {
	c, s := math32.Cos(t.RotationRadians), math32.Sin(t.RotationRadians)
	dx := p.X - t.Translation.X
	dy := p.Y - t.Translation.Y
	x := dx*c + dy*s
	y := -dx*s + dy*c
	return geom.Vec3{X: x, Y: y, Z: p.Z - t.Translation.Z}
}
