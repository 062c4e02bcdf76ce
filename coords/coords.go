// Package coords is the one polymorphic seam spec.md §9 names besides the
// debug drawer: a coordinate system maps an external 2-D or 3-D coordinate
// type to/from the engine's internal Vec3 (XY is the plane of motion, Z is
// up), so callers using glam, mgl32, or a bare (x,y) pair never have to
// know the engine's own vector type.
//
// Grounded on spec.md §9's "parameterise by a type-level trait/interface
// with two static methods to_internal/from_internal"; no adapter of this
// shape exists anywhere in the example pack (the teacher reasons in its
// own d3.Vec3 everywhere), so this is written directly from the spec's
// own interface shape using a Go generic instead of a vtable struct.
package coords

import "github.com/arl/landmass/geom"

// System converts between an external coordinate type T and the engine's
// internal geom.Vec3.
type System[T any] interface {
	ToInternal(T) geom.Vec3
	FromInternal(geom.Vec3) T
}

type xySystem struct{}

func (xySystem) ToInternal(p geom.Vec2) geom.Vec3   { return geom.V3(p, 0) }
func (xySystem) FromInternal(v geom.Vec3) geom.Vec2 { return v.XY() }

// XY embeds a 2-D coordinate into the XY plane at Z=0, per spec.md §3's
// "all 2-D adapters embed into the XY plane".
var XY System[geom.Vec2] = xySystem{}

type xyzSystem struct{}

func (xyzSystem) ToInternal(v geom.Vec3) geom.Vec3   { return v }
func (xyzSystem) FromInternal(v geom.Vec3) geom.Vec3 { return v }

// XYZ is the identity coordinate system: the caller already works in the
// engine's own Vec3 convention.
var XYZ System[geom.Vec3] = xyzSystem{}
