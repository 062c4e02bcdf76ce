package geom

import "github.com/arl/math32"

// Ordered wraps a float32 so it can be used as a stable BBH/heap sort key
// even in the presence of NaN, which Go's plain < leaves unordered. None of
// the geometry here is expected to produce NaN in well-formed input, but
// the wrapper keeps sorts total per the teacher's own defensive style
// (detour.OverlapBounds et al. never compare against NaN-producing inputs
// either, they simply structure the math to avoid them).
type Ordered float32

// Less reports o < other, treating NaN as greater than everything so a
// malformed sample never silently wins a min-search.
func (o Ordered) Less(other Ordered) bool {
	if math32.IsNaN(float32(o)) {
		return false
	}
	if math32.IsNaN(float32(other)) {
		return true
	}
	return o < other
}

// Triangle is a fan triangle carrying its 3-D vertices (XY for the planar
// test, Z for the height mesh's vertical profile).
type Triangle struct {
	A, B, C    Vec2
	AZ, BZ, CZ float32
}

// FanTriangles returns the triangle fan of a convex polygon, rooted at
// vertex 0 -- the same fan recast/meshdetail.go uses to rasterize detail
// meshes, reused here by navmesh.SamplePoint for planar point location and
// by the height-mesh vertical-profile query.
func FanTriangles(verts []Vec2, z []float32) []Triangle {
	if len(verts) < 3 {
		return nil
	}
	tris := make([]Triangle, 0, len(verts)-2)
	for i := 1; i < len(verts)-1; i++ {
		tris = append(tris, Triangle{
			A: verts[0], B: verts[i], C: verts[i+1],
			AZ: z[0], BZ: z[i], CZ: z[i+1],
		})
	}
	return tris
}

// Barycentric returns the barycentric coordinates of p with respect to
// triangle (a,b,c) in the XY plane.
func Barycentric(p, a, b, c Vec2) (u, v, w float32) {
	v0 := b.Sub(a)
	v1 := c.Sub(a)
	v2 := p.Sub(a)
	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)
	denom := d00*d11 - d01*d01
	if math32.Abs(denom) < 1e-12 {
		return 1, 0, 0
	}
	v = (d11*d20 - d01*d21) / denom
	w = (d00*d21 - d01*d20) / denom
	u = 1 - v - w
	return u, v, w
}

// ProjectOnTriangle projects p vertically onto t's plane, falling back to
// the closest point on t's edges when p's planar projection lands outside
// the triangle (the "edge-Voronoi fallback then plane projection" of
// spec.md §4.1). It reports the horizontal distance from p to the
// accepted point and the accepted point's height.
func ProjectOnTriangle(p Vec2, t Triangle) (point Vec2, height float32, horizDist float32) {
	u, v, w := Barycentric(p, t.A, t.B, t.C)
	if u >= 0 && v >= 0 && w >= 0 {
		height = u*t.AZ + v*t.BZ + w*t.CZ
		return p, height, 0
	}

	// Outside the triangle: fall back to the nearest point on any edge.
	type cand struct {
		pt   Vec2
		z    float32
		dist float32
	}
	edges := [3][2]int{{0, 1}, {1, 2}, {2, 0}}
	verts := [3]Vec2{t.A, t.B, t.C}
	zs := [3]float32{t.AZ, t.BZ, t.CZ}

	var best cand
	best.dist = math32.MaxFloat32
	for _, e := range edges {
		a, b := verts[e[0]], verts[e[1]]
		za, zb := zs[e[0]], zs[e[1]]
		closest, distSqr := ProjectPointSegment(p, a, b)
		if distSqr < best.dist {
			// interpolate height along the edge by the closest point's
			// parameter, recovered from its distance ratio to a/b.
			segLen := a.Dist(b)
			var t float32
			if segLen > 1e-9 {
				t = closest.Dist(a) / segLen
			}
			best = cand{pt: closest, z: za + (zb-za)*t, dist: distSqr}
		}
	}
	return best.pt, best.z, math32.Sqrt(best.dist)
}
