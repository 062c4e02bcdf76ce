package geom

import "github.com/arl/math32"

// SegSeg2D returns whether two segments intersect and, if so, the
// parametric position of the intersection along each segment. Grounded on
// detour.IntersectSegSeg2D, generalized from the XZ plane to our XY plane
// and from the gogeo d3.Vec3 slices to Vec2.
func SegSeg2D(ap, aq, bp, bq Vec2) (hit bool, s, t float32) {
	u := aq.Sub(ap)
	v := bq.Sub(bp)
	w := ap.Sub(bp)

	d := u.Perp(v)
	if math32.Abs(d) < 1e-6 {
		return false, 0, 0
	}
	s, t = v.Perp(w)/d, u.Perp(w)/d
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return false, 0, 0
	}
	return true, s, t
}

// EdgeIntersection implements the colinear-overlap test from spec.md §4.2
// step 5: project b's endpoints onto a's infinite line; the edges are
// stitchable when both of b's endpoints lie within tol of that line and
// the overlap in a's line-parameter space is non-empty. It returns the
// overlap segment on a's line (the intersection of the two segments'
// parameter ranges along a), or ok=false if the edges are not
// colinear-within-tolerance or do not overlap.
func EdgeIntersection(a0, a1, b0, b1 Vec2, tol float32) (p0, p1 Vec2, ok bool) {
	dir := a1.Sub(a0)
	length := dir.Len()
	if length < 1e-6 {
		return Vec2{}, Vec2{}, false
	}
	axis := dir.Scale(1.0 / length)
	normal := Vec2{-axis.Y, axis.X}

	// perpendicular distance of b's endpoints from a's infinite line
	d0 := b0.Sub(a0).Dot(normal)
	d1 := b1.Sub(a0).Dot(normal)
	if math32.Abs(d0) > tol || math32.Abs(d1) > tol {
		return Vec2{}, Vec2{}, false
	}

	// parametric position (in [0, length]) of each endpoint along a's axis
	ta0, ta1 := float32(0), length
	tb0 := b0.Sub(a0).Dot(axis)
	tb1 := b1.Sub(a0).Dot(axis)
	if tb0 > tb1 {
		tb0, tb1 = tb1, tb0
	}

	lo := math32.Max(ta0, tb0)
	hi := math32.Min(ta1, tb1)
	if lo >= hi {
		return Vec2{}, Vec2{}, false
	}

	p0 = a0.Add(axis.Scale(lo))
	p1 = a0.Add(axis.Scale(hi))
	return p0, p1, true
}

// ProjectPointSegment projects p onto the segment [a,b] and returns the
// closest point along with the squared distance to it, clamping the
// parameter to [0,1]. Grounded on detour's distancePtSegSqr2D.
func ProjectPointSegment(p, a, b Vec2) (closest Vec2, distSqr float32) {
	ab := b.Sub(a)
	t := float32(0)
	denom := ab.LenSqr()
	if denom > 1e-12 {
		t = p.Sub(a).Dot(ab) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	closest = a.Add(ab.Scale(t))
	distSqr = closest.DistSqr(p)
	return closest, distSqr
}

// SegmentsOverlap reports whether two parameter ranges [amin,amax] and
// [bmin,bmax] overlap by more than eps, mirroring detour's overlapRange.
func SegmentsOverlap(amin, amax, bmin, bmax, eps float32) bool {
	return !((amin+eps) > bmax || (amax-eps) < bmin)
}
