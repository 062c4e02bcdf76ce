package geom

import "github.com/arl/math32"

// Vec3 is a point or direction in the engine's shared 3-D space, XY the
// plane of motion and Z "up" per spec.md §3. Unlike the teacher's
// slice-backed d3.Vec3 (chosen there to satisfy a C-derived in-place
// mutation style), Vec3 is a plain value type: the rest of this module
// passes vectors by value and never aliases through a shared backing
// array, which is the more idiomatic Go shape for small immutable points.
type Vec3 struct {
	X, Y, Z float32
}

func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

func V3(xy Vec2, z float32) Vec3 { return Vec3{xy.X, xy.Y, z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dist(o Vec3) float32 {
	d := v.Sub(o)
	return math32.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}

func (v Vec3) Dist2D(o Vec3) float32 { return v.XY().Dist(o.XY()) }

func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}
