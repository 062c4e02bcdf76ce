package island

// growableDSU is a union-find over a dense, a-priori-unknown-size integer
// universe: regions are numbered as they are first seen while rebuilding
// the cross-island union (spec.md §4.2 step 7), so the structure must grow
// on demand rather than being sized up front like navmesh's disjointSet.
// Stdlib-only for the same reason as navmesh.disjointSet: no union-find
// type appears anywhere in the example pack's dependency surface.
type growableDSU struct {
	parent []int
	rank   []int
}

func newGrowableDSU() *growableDSU { return &growableDSU{} }

func (d *growableDSU) ensure(x int) {
	for len(d.parent) <= x {
		d.parent = append(d.parent, len(d.parent))
		d.rank = append(d.rank, 0)
	}
}

func (d *growableDSU) find(x int) int {
	d.ensure(x)
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *growableDSU) union(a, b int) {
	d.ensure(a)
	d.ensure(b)
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
}

// regionOf allocates (or reuses) the global region number for nr's
// island-local region, per spec.md §4.2 step 7's "(IslandId, region_index)
// -> region_number" mapping.
func (nd *NavData) regionOf(nr NodeRef) int {
	isl := nd.islands[nr.Island]
	rk := regionKey{Island: nr.Island, Region: isl.mesh.Polygons[nr.Polygon].Region}
	if id, ok := nd.regionNumber[rk]; ok {
		return id
	}
	id := nd.nextRegion
	nd.regionNumber[rk] = id
	nd.nextRegion++
	return id
}

// rebuildRegions implements spec.md §4.2 step 7: reset the union-find and
// the region-number mapping, then union every off-mesh link's two
// endpoints' region numbers.
func (nd *NavData) rebuildRegions() {
	nd.regionNumber = make(map[regionKey]int)
	nd.nextRegion = 0
	nd.regions = newGrowableDSU()

	for _, link := range nd.offMeshLinks {
		a := nd.regionOf(link.Start)
		b := nd.regionOf(link.End)
		nd.regions.union(a, b)
	}
}

// AreNodesConnected is the A* admissibility gate from spec.md §4.2: true
// iff a and b share an island-local region, or both have been assigned a
// region number and those numbers are joined in the union-find.
func (nd *NavData) AreNodesConnected(a, b NodeRef) bool {
	if a.Island == b.Island {
		isl := nd.islands[a.Island]
		if isl != nil && isl.mesh.Polygons[a.Polygon].Region == isl.mesh.Polygons[b.Polygon].Region {
			return true
		}
	}
	if nd.regions == nil {
		return false
	}
	ra, aOK := nd.regionNumber[regionKey{Island: a.Island, Region: nd.polyRegion(a)}]
	rb, bOK := nd.regionNumber[regionKey{Island: b.Island, Region: nd.polyRegion(b)}]
	if !aOK || !bOK {
		return false
	}
	return nd.regions.find(ra) == nd.regions.find(rb)
}

func (nd *NavData) polyRegion(nr NodeRef) int {
	isl := nd.islands[nr.Island]
	if isl == nil || isl.mesh == nil {
		return -1
	}
	return isl.mesh.Polygons[nr.Polygon].Region
}

