// Package navmesh implements the validated nav mesh data model of
// spec.md §3/§4.1: a caller-supplied polygon soup is validated into an
// immutable Mesh carrying derived connectivity, boundary edges,
// per-polygon centers/bounds/region labels, and point-sampling queries.
//
// Grounded on detour/mesh.go and detour/poly.go (MeshTile/Poly connectivity
// and PolyRef-style handles), generalized from Detour's fixed tile-grid
// binary format to a single in-memory validated polygon mesh per island.
package navmesh

import (
	"github.com/arl/landmass/geom"
)

// RawMesh is the user-supplied, unvalidated input: vertices, polygons
// (ordered, convex, CCW in XY) and one type index per polygon.
type RawMesh struct {
	Vertices  []geom.Vec3
	Polygons  [][]int
	TypeIndex []int
}

// Connectivity describes one polygon edge's neighbour, or its absence for
// a boundary edge. TravelDistances are the Euclidean lengths from each
// polygon's center to the shared edge's midpoint, per spec.md §3.
type Connectivity struct {
	Connected       bool
	NeighbourPolygon int
	TravelDistances [2]float32 // [0] = this polygon's center to midpoint, [1] = neighbour's
}

// Polygon is a validated, derived polygon: its vertex indices plus the
// connectivity, center, bounds and region label computed at Validate time.
type Polygon struct {
	Vertices     []int
	Connectivity []Connectivity // one per edge, Connectivity[i] is edge (Vertices[i], Vertices[i+1])
	Center       geom.Vec3
	Bounds       geom.Bounds
	Region       int
}

// HeightMesh is the optional per-polygon triangle fan giving a detailed
// vertical profile, per spec.md §3.
type HeightMesh struct {
	// Triangles[i] is the fan for Mesh.Polygons[i].
	Triangles [][]geom.Triangle
}

// Mesh is a validated nav mesh: the result of Validate on a RawMesh. All
// of its invariants (§3) hold for the lifetime of the value; Mesh is never
// mutated in place (islands swap mesh pointers wholesale, per spec.md §5).
type Mesh struct {
	Vertices []geom.Vec3
	Polygons []Polygon
	Bounds   geom.Bounds
	Height   *HeightMesh

	// TypeIndex carries the caller-supplied type index for each polygon
	// through validation, so islands can resolve it against their
	// type-index-to-NodeType mapping (spec.md §3/§4.3).
	TypeIndex []int

	// NumRegions is the number of distinct region labels assigned.
	NumRegions int
}

// MeshEdgeRef identifies one polygon edge.
type MeshEdgeRef struct {
	Polygon int
	Edge    int
}

// EdgePoints returns the two endpoints of e in polygon winding order, per
// spec.md §4.1.
func (m *Mesh) EdgePoints(e MeshEdgeRef) (geom.Vec3, geom.Vec3) {
	poly := m.Polygons[e.Polygon]
	n := len(poly.Vertices)
	a := poly.Vertices[e.Edge]
	b := poly.Vertices[(e.Edge+1)%n]
	return m.Vertices[a], m.Vertices[b]
}
