package navmesh

import (
	"github.com/arl/landmass/geom"
)

// edgeKey canonicalizes an undirected edge (a,b) for the doubly-connected
// check in step 2 below.
type edgeKey struct{ a, b int }

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type edgeOwner struct {
	polygon int
	edge    int
}

// Validate accepts a RawMesh and either returns a Mesh satisfying every
// invariant in spec.md §3, or the first ValidationError encountered. Checks
// run in the exact order spec.md §4.1 mandates: global type-indices length
// first, then per polygon (in order) size, indices, edge-walk degeneracy +
// connectivity insertion, then convexity -- grounded on detour/mesh.go's
// validation-at-load-time philosophy (Detour refuses to interpret malformed
// tile data rather than limping along).
func Validate(raw *RawMesh) (*Mesh, error) {
	if len(raw.TypeIndex) != len(raw.Polygons) {
		return nil, &ValidationError{
			Kind: TypeIndicesHaveWrongLength,
			NP:   len(raw.Polygons),
			NT:   len(raw.TypeIndex),
		}
	}

	edges := make(map[edgeKey][]edgeOwner)
	polys := make([]Polygon, len(raw.Polygons))

	for pi, verts := range raw.Polygons {
		if len(verts) < 3 {
			return nil, &ValidationError{Kind: NotEnoughVerticesInPolygon, Polygon: pi}
		}
		for _, vi := range verts {
			if vi < 0 || vi >= len(raw.Vertices) {
				return nil, &ValidationError{Kind: InvalidVertexIndexInPolygon, Polygon: pi}
			}
		}

		n := len(verts)
		for i := 0; i < n; i++ {
			a, b := verts[i], verts[(i+1)%n]
			if raw.Vertices[a].Dist(raw.Vertices[b]) < 1e-7 {
				return nil, &ValidationError{Kind: DegenerateEdgeInPolygon, Polygon: pi}
			}
			key := makeEdgeKey(a, b)
			edges[key] = append(edges[key], edgeOwner{polygon: pi, edge: i})
			if len(edges[key]) > 2 {
				return nil, &ValidationError{Kind: DoublyConnectedEdge, A: key.a, B: key.b}
			}
		}

		if !isConvexCCW(raw.Vertices, verts) {
			return nil, &ValidationError{Kind: ConcavePolygon, Polygon: pi}
		}

		polys[pi].Vertices = append([]int(nil), verts...)
		polys[pi].Connectivity = make([]Connectivity, n)
	}

	// Per-polygon center and bounds, computed before connectivity so travel
	// distances (center-to-midpoint) can be derived in one pass below.
	for pi := range polys {
		polys[pi].Center, polys[pi].Bounds = centerAndBounds(raw.Vertices, polys[pi].Vertices)
	}

	// Wire up connectivity now that every edge's owner set and every
	// polygon's center are known.
	for key, owners := range edges {
		if len(owners) != 2 {
			continue // boundary edge: Connectivity stays zero-value (not connected)
		}
		mid := raw.Vertices[key.a].Lerp(raw.Vertices[key.b], 0.5)
		a, b := owners[0], owners[1]
		polys[a.polygon].Connectivity[a.edge] = Connectivity{
			Connected:        true,
			NeighbourPolygon: b.polygon,
			TravelDistances:  [2]float32{polys[a.polygon].Center.Dist2D(mid), polys[b.polygon].Center.Dist2D(mid)},
		}
		polys[b.polygon].Connectivity[b.edge] = Connectivity{
			Connected:        true,
			NeighbourPolygon: a.polygon,
			TravelDistances:  [2]float32{polys[b.polygon].Center.Dist2D(mid), polys[a.polygon].Center.Dist2D(mid)},
		}
	}

	// Region labels: connected components under direct connectivity.
	dsu := newDisjointSet(len(polys))
	for pi := range polys {
		for _, c := range polys[pi].Connectivity {
			if c.Connected {
				dsu.union(pi, c.NeighbourPolygon)
			}
		}
	}
	roots := make(map[int]int)
	numRegions := 0
	for pi := range polys {
		r := dsu.find(pi)
		id, ok := roots[r]
		if !ok {
			id = numRegions
			roots[r] = id
			numRegions++
		}
		polys[pi].Region = id
	}

	bounds := geom.EmptyBounds()
	for _, v := range raw.Vertices {
		bounds.ExpandPoint(v.XY(), v.Z)
	}

	return &Mesh{
		Vertices:   append([]geom.Vec3(nil), raw.Vertices...),
		Polygons:   polys,
		Bounds:     bounds,
		TypeIndex:  append([]int(nil), raw.TypeIndex...),
		NumRegions: numRegions,
	}, nil
}

// centerAndBounds computes the centroid (mean of vertices) and AABB of a
// polygon, mirroring detour.Poly's precomputed per-poly center used by
// FindNearestPoly's distance heuristics.
func centerAndBounds(vertices []geom.Vec3, verts []int) (geom.Vec3, geom.Bounds) {
	var sum geom.Vec3
	bounds := geom.EmptyBounds()
	for _, vi := range verts {
		v := vertices[vi]
		sum = sum.Add(v)
		bounds.ExpandPoint(v.XY(), v.Z)
	}
	n := float32(len(verts))
	return sum.Scale(1 / n), bounds
}

// isConvexCCW checks that verts forms a convex, counter-clockwise polygon
// in the XY plane per spec.md §3: at every corner, the incoming edge
// (leftEdge) crossed with the outgoing edge (rightEdge) must be >= 0. A
// zero cross product is accepted when the outgoing edge continues in the
// incoming edge's direction (a straight corner) and rejected when it
// doubles back along it (a spike).
func isConvexCCW(vertices []geom.Vec3, verts []int) bool {
	n := len(verts)
	for i := 0; i < n; i++ {
		prev := vertices[verts[(i-1+n)%n]].XY()
		cur := vertices[verts[i]].XY()
		next := vertices[verts[(i+1)%n]].XY()
		leftEdge := cur.Sub(prev)
		rightEdge := next.Sub(cur)
		cross := leftEdge.Perp(rightEdge)
		if cross < 0 || (cross == 0 && leftEdge.Dot(rightEdge) < 0) {
			return false
		}
	}
	return true
}
