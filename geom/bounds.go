package geom

import "github.com/arl/math32"

// Bounds is an axis-aligned bounding box in the XY plane plus a vertical
// extent, mirroring the AABB pattern used throughout detour/recast
// (detour.OverlapBounds, recast.CalcBounds) but kept 2.5-D since almost
// every consumer here (BBH candidate queries, mesh bounds) only needs the
// planar extent with a cheap vertical reject.
type Bounds struct {
	Min, Max Vec2
	MinZ, MaxZ float32
}

// EmptyBounds returns a bounds value that will be replaced by the first
// ExpandPoint or Union call (the inverse-infinite idiom used by
// recast.CalcBounds).
func EmptyBounds() Bounds {
	return Bounds{
		Min:  Vec2{math32.MaxFloat32, math32.MaxFloat32},
		Max:  Vec2{-math32.MaxFloat32, -math32.MaxFloat32},
		MinZ: math32.MaxFloat32,
		MaxZ: -math32.MaxFloat32,
	}
}

// ExpandPoint grows b so it contains (p, z).
func (b *Bounds) ExpandPoint(p Vec2, z float32) {
	b.Min.X = math32.Min(b.Min.X, p.X)
	b.Min.Y = math32.Min(b.Min.Y, p.Y)
	b.Max.X = math32.Max(b.Max.X, p.X)
	b.Max.Y = math32.Max(b.Max.Y, p.Y)
	b.MinZ = math32.Min(b.MinZ, z)
	b.MaxZ = math32.Max(b.MaxZ, z)
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Min:  Vec2{math32.Min(b.Min.X, o.Min.X), math32.Min(b.Min.Y, o.Min.Y)},
		Max:  Vec2{math32.Max(b.Max.X, o.Max.X), math32.Max(b.Max.Y, o.Max.Y)},
		MinZ: math32.Min(b.MinZ, o.MinZ),
		MaxZ: math32.Max(b.MaxZ, o.MaxZ),
	}
}

// Expanded returns b grown uniformly by d on all sides, vertically as well
// as in the plane (used to turn "within edgeLinkDistance" into an AABB
// query per spec.md §4.2).
func (b Bounds) Expanded(d float32) Bounds {
	return Bounds{
		Min:  Vec2{b.Min.X - d, b.Min.Y - d},
		Max:  Vec2{b.Max.X + d, b.Max.Y + d},
		MinZ: b.MinZ - d,
		MaxZ: b.MaxZ + d,
	}
}

// Overlaps reports whether b and o intersect, following
// detour.OverlapBounds's per-axis reject-early structure.
func (b Bounds) Overlaps(o Bounds) bool {
	if b.Min.X > o.Max.X || b.Max.X < o.Min.X {
		return false
	}
	if b.Min.Y > o.Max.Y || b.Max.Y < o.Min.Y {
		return false
	}
	if b.MinZ > o.MaxZ || b.MaxZ < o.MinZ {
		return false
	}
	return true
}

// Contains2D reports whether p lies within the planar extent of b.
func (b Bounds) Contains2D(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}
