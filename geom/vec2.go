// Package geom is the planar-geometry kernel shared by the rest of the
// engine: bounding boxes, a bounding-box hierarchy, segment/edge
// intersection with tolerance, and point-segment projection. Everything
// that reasons about islands, stitching, the funnel and avoidance works in
// the XY plane, so Vec2 carries the bulk of the arithmetic; the package's
// own Vec3 value type (vec3.go) is used at the boundary where height
// matters.
package geom

import (
	"github.com/arl/math32"
)

// Vec2 is a point or direction in the XY plane of motion.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float32   { return v.X*o.X + v.Y*o.Y }

// Perp is the 2-D "cross product" (z-component of the 3-D cross product).
func (v Vec2) Perp(o Vec2) float32 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) LenSqr() float32 { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float32    { return math32.Sqrt(v.LenSqr()) }

func (v Vec2) DistSqr(o Vec2) float32 { return v.Sub(o).LenSqr() }
func (v Vec2) Dist(o Vec2) float32    { return math32.Sqrt(v.DistSqr(o)) }

// Normalized returns v scaled to unit length, or the zero vector if v is
// (numerically) the zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return v.Scale(1.0 / l)
}

// Lerp interpolates from v to o by t in [0, 1].
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// SignedArea2 returns twice the signed area of the triangle (a, b, c); its
// sign gives the winding of the triangle (positive == counter-clockwise).
func SignedArea2(a, b, c Vec2) float32 {
	return b.Sub(a).Perp(c.Sub(a))
}

// LeftOrOn reports whether c is to the left of, or exactly on, the directed
// line through a,b.
func LeftOrOn(a, b, c Vec2) bool {
	return SignedArea2(a, b, c) >= 0
}
