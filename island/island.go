package island

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

// Island owns one validated mesh placed in the world by a Transform, plus
// the mapping from the mesh's raw polygon type indices to the
// archipelago-wide NodeType registry, per spec.md §3. Grounded on
// detour/tile.go's MeshTile (a validated mesh plus the header that places
// it among its neighbours), generalized from Detour's fixed tile-grid slot
// to an arbitrary world transform.
type Island struct {
	id        IslandId
	mesh      *navmesh.Mesh
	transform Transform

	// typeIndexToNodeType resolves RawMesh.TypeIndex values to registry
	// NodeTypes; an index absent from the map costs DefaultCost.
	typeIndexToNodeType map[int]NodeType

	// dirty is set by SetNavMesh and cleared once NavData.Update has
	// restitched this island's boundary.
	dirty bool
}

func newIsland(id IslandId) *Island {
	return &Island{id: id}
}

func (isl *Island) ID() IslandId { return isl.id }

// SetNavMesh replaces the island's validated mesh, pose and node-type
// mapping wholesale and marks it dirty for the next NavData.Update.
func (isl *Island) SetNavMesh(transform Transform, mesh *navmesh.Mesh, typeIndexToNodeType map[int]NodeType) {
	isl.transform = transform
	isl.mesh = mesh
	isl.typeIndexToNodeType = typeIndexToNodeType
	isl.dirty = true
}

func (isl *Island) Mesh() *navmesh.Mesh    { return isl.mesh }
func (isl *Island) Transform() Transform   { return isl.transform }
func (isl *Island) Dirty() bool            { return isl.dirty }

// NodeTypeCost resolves a polygon's cost multiplier: its mapped NodeType's
// registered cost if both the mapping and the registry entry exist,
// otherwise DefaultCost, per spec.md §4.3.
func (isl *Island) NodeTypeCost(polygon int, types *NodeTypes) float32 {
	if isl.mesh == nil || polygon >= len(isl.mesh.TypeIndex) {
		return DefaultCost
	}
	nt, ok := isl.typeIndexToNodeType[isl.mesh.TypeIndex[polygon]]
	if !ok {
		return DefaultCost
	}
	cost, ok := types.Cost(nt)
	if !ok {
		return DefaultCost
	}
	return cost
}

// NodeType returns polygon pi's mapped NodeType, if its raw type index has
// one in this island's mapping.
func (isl *Island) NodeType(pi int) (NodeType, bool) {
	if isl.mesh == nil || pi >= len(isl.mesh.TypeIndex) {
		return NodeType{}, false
	}
	nt, ok := isl.typeIndexToNodeType[isl.mesh.TypeIndex[pi]]
	return nt, ok
}

// ReferencesNodeType reports whether this island's type-index mapping
// points at nt, used by NodeTypes.Remove's caller to compute the
// "referenced by a live island" guard of spec.md §3/§6.
func (isl *Island) ReferencesNodeType(nt NodeType) bool {
	for _, mapped := range isl.typeIndexToNodeType {
		if mapped == nt {
			return true
		}
	}
	return false
}

// WorldBounds transforms the mesh's local AABB corners through the
// island's pose. Because Transform may rotate about the vertical axis, the
// four corners (not just Min/Max) must be individually transformed.
func (isl *Island) WorldBounds() geom.Bounds {
	if isl.mesh == nil {
		return geom.EmptyBounds()
	}
	mb := isl.mesh.Bounds
	corners := [4]geom.Vec2{
		{X: mb.Min.X, Y: mb.Min.Y},
		{X: mb.Max.X, Y: mb.Min.Y},
		{X: mb.Max.X, Y: mb.Max.Y},
		{X: mb.Min.X, Y: mb.Max.Y},
	}
	b := geom.EmptyBounds()
	for _, c := range corners {
		wp := isl.transform.ToWorld(geom.V3(c, 0))
		b.ExpandPoint(wp.XY(), 0)
	}
	b.MinZ = mb.MinZ + isl.transform.Translation.Z
	b.MaxZ = mb.MaxZ + isl.transform.Translation.Z
	return b
}

// BoundaryEdges returns every polygon edge with no intra-island
// connectivity: the candidate set for both inter-island stitching and
// user-declared animation link endpoints.
func (isl *Island) BoundaryEdges() []navmesh.MeshEdgeRef {
	if isl.mesh == nil {
		return nil
	}
	var out []navmesh.MeshEdgeRef
	for pi, poly := range isl.mesh.Polygons {
		for ei, c := range poly.Connectivity {
			if !c.Connected {
				out = append(out, navmesh.MeshEdgeRef{Polygon: pi, Edge: ei})
			}
		}
	}
	return out
}

// WorldEdgePoints returns e's endpoints transformed into world space.
func (isl *Island) WorldEdgePoints(e navmesh.MeshEdgeRef) (geom.Vec3, geom.Vec3) {
	a, b := isl.mesh.EdgePoints(e)
	return isl.transform.ToWorld(a), isl.transform.ToWorld(b)
}

// WorldCenter returns polygon pi's center transformed into world space.
func (isl *Island) WorldCenter(pi int) geom.Vec3 {
	return isl.transform.ToWorld(isl.mesh.Polygons[pi].Center)
}

// SamplePoint inverse-transforms point into the island's local space,
// quick-rejects against the expanded local bounds, delegates to the mesh,
// and transforms the hit back to world space, per spec.md §4.2.
func (isl *Island) SamplePoint(point geom.Vec3, dist navmesh.PointSampleDistance3D) (geom.Vec3, int, bool) {
	if isl.mesh == nil {
		return geom.Vec3{}, -1, false
	}
	local := isl.transform.ToLocal(point)
	eb := isl.mesh.Bounds.Expanded(dist.Horizontal)
	if local.X < eb.Min.X || local.X > eb.Max.X || local.Y < eb.Min.Y || local.Y > eb.Max.Y {
		return geom.Vec3{}, -1, false
	}
	if local.Z < isl.mesh.Bounds.MinZ-dist.Below || local.Z > isl.mesh.Bounds.MaxZ+dist.Above {
		return geom.Vec3{}, -1, false
	}
	p, poly, ok := isl.mesh.SamplePoint(local, dist)
	if !ok {
		return geom.Vec3{}, -1, false
	}
	return isl.transform.ToWorld(p), poly, true
}
