package island

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

// islandLess gives IslandId (backed by uuid.UUID, a [16]byte) a total
// order, used only to pick a single processing direction for dirty-dirty
// island pairs in Update step 4 (spec.md §4.2) and to keep the BBH item
// order deterministic.
func islandLess(a, b IslandId) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// stitchIslands implements spec.md §4.2 step 5 for one ordered island
// pair: it builds a BBH over A's boundary edges, queries it with each of
// B's boundary edges expanded by edgeLinkDistance, and for every
// colinear-within-tolerance overlap creates a symmetric pair of boundary
// links. Grounded on detour/tile.go's connectExtLinks/findConnectingPolys
// pair, generalized from Detour's axis-aligned tile-border walk to
// arbitrary-pose islands via geom.EdgeIntersection.
func (nd *NavData) stitchIslands(aID, bID IslandId, edgeLinkDistance float32, toRemodify map[NodeRef]bool) {
	a := nd.islands[aID]
	b := nd.islands[bID]
	if a.mesh == nil || b.mesh == nil {
		return
	}

	aEdges := a.BoundaryEdges()
	if len(aEdges) == 0 {
		return
	}

	aPts := make([][2]geom.Vec3, len(aEdges))
	aItems := make([]geom.Item, len(aEdges))
	for i, e := range aEdges {
		p0, p1 := a.WorldEdgePoints(e)
		aPts[i] = [2]geom.Vec3{p0, p1}
		bounds := geom.EmptyBounds()
		bounds.ExpandPoint(p0.XY(), p0.Z)
		bounds.ExpandPoint(p1.XY(), p1.Z)
		aItems[i] = geom.Item{Bounds: bounds, Index: i}
	}
	aBBH := geom.NewBBH(aItems)

	for _, be := range b.BoundaryEdges() {
		bp0, bp1 := b.WorldEdgePoints(be)
		q := geom.EmptyBounds()
		q.ExpandPoint(bp0.XY(), bp0.Z)
		q.ExpandPoint(bp1.XY(), bp1.Z)
		q = q.Expanded(edgeLinkDistance)

		var hits []int
		hits = aBBH.Query(q, hits[:0])
		for _, hi := range hits {
			ae := aEdges[hi]
			ap0, ap1 := aPts[hi][0], aPts[hi][1]

			p0, p1, ok := geom.EdgeIntersection(ap0.XY(), ap1.XY(), bp0.XY(), bp1.XY(), edgeLinkDistance)
			if !ok {
				continue
			}
			if p0.Dist(p1) < edgeLinkDistance {
				continue // portal too short, per spec.md §4.2 step 5
			}

			// Approximate the portal's height by the average of the four
			// source endpoints' heights; the edges are colinear within
			// tolerance so this stays within that same tolerance.
			midZ := (ap0.Z + ap1.Z + bp0.Z + bp1.Z) / 4
			portal0 := geom.V3(p0, midZ)
			portal1 := geom.V3(p1, midZ)

			aNode := NodeRef{Island: aID, Polygon: ae.Polygon}
			bNode := NodeRef{Island: bID, Polygon: be.Polygon}

			midWorld := portal0.Lerp(portal1, 0.5)
			aCenter := a.WorldCenter(ae.Polygon)
			bCenter := b.WorldCenter(be.Polygon)
			cost := aCenter.Dist(midWorld) + midWorld.Dist(bCenter)

			fwd := &OffMeshLink{
				ID: NewOffMeshLinkId(), Kind: BoundaryLink,
				Start: aNode, End: bNode,
				StartPortal: [2]geom.Vec3{portal0, portal1},
				EndPortal:   [2]geom.Vec3{portal1, portal0},
				Cost:        cost,
			}
			bwd := &OffMeshLink{
				ID: NewOffMeshLinkId(), Kind: BoundaryLink,
				Start: bNode, End: aNode,
				StartPortal: [2]geom.Vec3{portal1, portal0},
				EndPortal:   [2]geom.Vec3{portal0, portal1},
				Cost:        cost,
			}
			nd.registerLink(fwd)
			nd.registerLink(bwd)

			toRemodify[aNode] = true
			toRemodify[bNode] = true
		}
	}
}

// recomputeModifiedNode implements spec.md §4.2 step 6. Every off-mesh
// link portal attached to nr is, by construction, colinear with one of
// nr's polygon edges (stitching portals lie on the boundary edge they
// were derived from; animation link portals are declared on a literal
// polygon edge), so the general planar boolean clip reduces to 1-D
// interval subtraction along each boundary edge: no general polygon
// clipper is needed.
// A portal is carved from an edge only when both of its endpoints lie
// within edgeLinkDistance of that edge's line, so a portal on one edge
// leaves nr's other edges, including a parallel one, untouched.
func (nd *NavData) recomputeModifiedNode(nr NodeRef, edgeLinkDistance float32) *ModifiedNode {
	isl := nd.islands[nr.Island]
	if isl == nil || isl.mesh == nil || nr.Polygon >= len(isl.mesh.Polygons) {
		return &ModifiedNode{}
	}
	poly := isl.mesh.Polygons[nr.Polygon]
	links := nd.nodeLinks[nr]

	mn := &ModifiedNode{}
	for ei, c := range poly.Connectivity {
		if c.Connected {
			continue
		}
		e0, e1 := isl.WorldEdgePoints(navmesh.MeshEdgeRef{Polygon: nr.Polygon, Edge: ei})
		length := e0.Dist(e1)
		if length < 1e-6 {
			continue
		}

		var covered [][2]float32
		for id := range links {
			link := nd.offMeshLinks[id]
			if link == nil {
				continue
			}
			var portal [2]geom.Vec3
			switch {
			case link.Start == nr:
				portal = link.StartPortal
			case link.End == nr:
				portal = link.EndPortal
			default:
				continue
			}
			t0 := projectParam(e0, e1, portal[0])
			t1 := projectParam(e0, e1, portal[1])
			if e0.Lerp(e1, t0).Dist2D(portal[0]) > edgeLinkDistance+1e-4 ||
				e0.Lerp(e1, t1).Dist2D(portal[1]) > edgeLinkDistance+1e-4 {
				continue // the portal lies on another edge of nr
			}
			if t0 > t1 {
				t0, t1 = t1, t0
			}
			t0, t1 = clamp01(t0), clamp01(t1)
			if t1 > t0 {
				covered = append(covered, [2]float32{t0, t1})
			}
		}

		for _, iv := range subtractIntervals(covered) {
			p0 := e0.Lerp(e1, iv[0])
			p1 := e0.Lerp(e1, iv[1])
			mn.Boundary = append(mn.Boundary, []geom.Vec3{p0, p1})
		}
	}
	return mn
}

// projectParam returns the parameter t such that a.Lerp(b, t) is the
// closest point on line (a,b) to p, unclamped.
func projectParam(a, b, p geom.Vec3) float32 {
	ab := b.Sub(a)
	denom := ab.X*ab.X + ab.Y*ab.Y + ab.Z*ab.Z
	if denom < 1e-12 {
		return 0
	}
	ap := p.Sub(a)
	return (ap.X*ab.X + ap.Y*ab.Y + ap.Z*ab.Z) / denom
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// subtractIntervals returns the gaps of [0,1] not covered by any interval
// in covered, sorted left to right. Used to carve link-portal spans out of
// a boundary edge's parameter range.
func subtractIntervals(covered [][2]float32) [][2]float32 {
	if len(covered) == 0 {
		return [][2]float32{{0, 1}}
	}
	sorted := append([][2]float32(nil), covered...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j][0] < sorted[j-1][0]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv[0] <= last[1] {
			if iv[1] > last[1] {
				last[1] = iv[1]
			}
			continue
		}
		merged = append(merged, iv)
	}

	var gaps [][2]float32
	cursor := float32(0)
	for _, iv := range merged {
		if iv[0] > cursor {
			gaps = append(gaps, [2]float32{cursor, iv[0]})
		}
		if iv[1] > cursor {
			cursor = iv[1]
		}
	}
	if cursor < 1 {
		gaps = append(gaps, [2]float32{cursor, 1})
	}
	return gaps
}
