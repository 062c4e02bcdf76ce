package navmesh

// disjointSet is a standard union-find with path compression and union by
// rank, used to label regions within a single mesh (Validate); the island
// package keeps its own growable union-find for merging regions across
// off-mesh links. It is plain stdlib: there is no
// union-find type in the example pack's dependency surface worth pulling in
// for ~20 lines of well-known algorithm, and the teacher's own region code
// (recast/region.go) solves a different problem (flood-fill over a
// heightfield) that doesn't export a reusable DSU either.
type disjointSet struct {
	parent []int
	rank   []int
}

func newDisjointSet(n int) *disjointSet {
	d := &disjointSet{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *disjointSet) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

func (d *disjointSet) union(a, b int) {
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
