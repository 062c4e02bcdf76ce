package navmesh

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/math32"
)

// PointSampleDistance3D is the 3-D sampling tolerance from spec.md §4.1:
// horizontal radius, vertical tolerance split above/below the query point,
// and a preference ratio weighting vertical error against horizontal error
// when several candidate polygons qualify.
type PointSampleDistance3D struct {
	Horizontal            float32
	Above, Below           float32
	VerticalPreferenceRatio float32
}

// PointSampleDistance2D collapses the 3-D variant to a single scalar
// tolerance, per spec.md §4.1.
func PointSampleDistance2D(tolerance float32) PointSampleDistance3D {
	return PointSampleDistance3D{
		Horizontal:              tolerance,
		Above:                   tolerance,
		Below:                   tolerance,
		VerticalPreferenceRatio: 1,
	}
}

// SamplePoint projects point onto the mesh within the given tolerance,
// returning the projected point and the owning polygon index. It
// implements spec.md §4.1: for every polygon whose AABB intersects the
// (expanded) sample box, triangulate as a fan from vertex 0, project onto
// each triangle with the edge-Voronoi-then-plane-projection fallback,
// accept candidates within tolerance, and keep the one minimizing
// horizontal^2 + (vertical*ratio)^2.
//
// Grounded on detour/query.go's FindNearestPoly / closestPointOnPoly
// (AABB-prefiltered per-polygon closest-point search), generalized from
// Detour's 2-D height-field-backed polygons to an explicit triangle fan
// with an independent vertical tolerance band.
func (m *Mesh) SamplePoint(point geom.Vec3, dist PointSampleDistance3D) (geom.Vec3, int, bool) {
	queryBounds := geom.Bounds{
		Min:  geom.Vec2{X: point.X - dist.Horizontal, Y: point.Y - dist.Horizontal},
		Max:  geom.Vec2{X: point.X + dist.Horizontal, Y: point.Y + dist.Horizontal},
		MinZ: point.Z - dist.Below,
		MaxZ: point.Z + dist.Above,
	}

	ratio := dist.VerticalPreferenceRatio
	if ratio == 0 {
		ratio = 1
	}

	best := math32.MaxFloat32
	bestPoint := geom.Vec3{}
	bestPoly := -1

	for pi := range m.Polygons {
		poly := &m.Polygons[pi]
		if !poly.Bounds.Overlaps(queryBounds) {
			continue
		}

		verts := make([]geom.Vec2, len(poly.Vertices))
		zs := make([]float32, len(poly.Vertices))
		for i, vi := range poly.Vertices {
			verts[i] = m.Vertices[vi].XY()
			zs[i] = m.Vertices[vi].Z
		}

		for _, tri := range geom.FanTriangles(verts, zs) {
			projected, height, horiz := geom.ProjectOnTriangle(point.XY(), tri)
			if horiz > dist.Horizontal {
				continue
			}
			vertical := height - point.Z
			if vertical > dist.Above || -vertical > dist.Below {
				continue
			}
			score := horiz*horiz + (vertical*ratio)*(vertical*ratio)
			if score < best {
				best = score
				bestPoint = geom.V3(projected, height)
				bestPoly = pi
			}
		}
	}

	if bestPoly < 0 {
		return geom.Vec3{}, -1, false
	}
	return bestPoint, bestPoly, true
}
