package island

import (
	"sort"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

// NavData owns the island set, the off-mesh link table and its reverse
// index, the modified-node cache, and the cross-island region union-find,
// per spec.md §4.2.
type NavData struct {
	islands map[IslandId]*Island
	dirty   map[IslandId]bool
	deleted map[IslandId]bool

	offMeshLinks map[OffMeshLinkId]*OffMeshLink
	// nodeLinks holds, per node, the set of off-mesh links departing from
	// it (NodeRef -> Set<OffMeshLinkId> in spec.md §4.2).
	nodeLinks map[NodeRef]map[OffMeshLinkId]bool

	modifiedNodes map[NodeRef]*ModifiedNode

	regions      *growableDSU
	regionNumber map[regionKey]int
	nextRegion   int
}

type regionKey struct {
	Island IslandId
	Region int
}

func NewNavData() *NavData {
	return &NavData{
		islands:       make(map[IslandId]*Island),
		dirty:         make(map[IslandId]bool),
		deleted:       make(map[IslandId]bool),
		offMeshLinks:  make(map[OffMeshLinkId]*OffMeshLink),
		nodeLinks:     make(map[NodeRef]map[OffMeshLinkId]bool),
		modifiedNodes: make(map[NodeRef]*ModifiedNode),
		regionNumber:  make(map[regionKey]int),
	}
}

// AddIsland creates a new, empty, dirty island and returns its id.
func (nd *NavData) AddIsland() IslandId {
	id := NewIslandId()
	isl := newIsland(id)
	isl.dirty = true
	nd.islands[id] = isl
	nd.dirty[id] = true
	return id
}

// Island returns the live island for id, or nil if unknown.
func (nd *NavData) Island(id IslandId) *Island { return nd.islands[id] }

// MarkDirty flags id for restitching on the next Update. Islands changed
// through SetNavMesh need no call: Update also collects every island whose
// own dirty flag is set.
func (nd *NavData) MarkDirty(id IslandId) { nd.dirty[id] = true }

// RemoveIsland schedules id for removal; the island and everything
// referencing it is torn down on the next Update.
func (nd *NavData) RemoveIsland(id IslandId) {
	if _, ok := nd.islands[id]; !ok {
		return
	}
	nd.deleted[id] = true
}

// OffMeshLink looks up a link by id.
func (nd *NavData) OffMeshLink(id OffMeshLinkId) (*OffMeshLink, bool) {
	l, ok := nd.offMeshLinks[id]
	return l, ok
}

// ModifiedNode returns the carved boundary for nr, if one has been
// computed. Update computes entries for nodes whose boundary links were
// created or dropped in that call; AddAnimationLink creates no entry, so a
// node touched only by animation links has none.
func (nd *NavData) ModifiedNode(nr NodeRef) (*ModifiedNode, bool) {
	mn, ok := nd.modifiedNodes[nr]
	return mn, ok
}

// SamplePoint projects point onto the nearest island within dist's
// tolerance, trying every live island and keeping the closest hit, per
// spec.md §4.2/§4.7 step 2. Grounded on detour/mesh.go's
// NavMesh.FindNearestPolyInTile loop over tiles, generalized to a loop
// over islands with the argmin kept at the NavData level instead of a
// single fixed tile grid.
func (nd *NavData) SamplePoint(point geom.Vec3, dist navmesh.PointSampleDistance3D) (geom.Vec3, NodeRef, bool) {
	var (
		best      geom.Vec3
		bestNode  NodeRef
		bestDist  float32
		found     bool
	)

	for id, isl := range nd.islands {
		hit, poly, ok := isl.SamplePoint(point, dist)
		if !ok {
			continue
		}
		d := hit.Dist(point)
		if !found || d < bestDist {
			best, bestNode, bestDist, found = hit, NodeRef{Island: id, Polygon: poly}, d, true
		}
	}

	return best, bestNode, found
}

// NodeTypeReferenced reports whether any live island maps one of its
// polygon type indices to nt, the guard RemoveNodeType needs per
// spec.md §3/§6.
func (nd *NavData) NodeTypeReferenced(nt NodeType) bool {
	for _, isl := range nd.islands {
		if isl.ReferencesNodeType(nt) {
			return true
		}
	}
	return false
}

// Dirty reports whether any live island has unstitched changes pending
// the next Update: debug drawing checks this to refuse drawing a stale
// snapshot of the corridor/link graph (spec.md §9).
func (nd *NavData) Dirty() bool {
	if len(nd.dirty) > 0 || len(nd.deleted) > 0 {
		return true
	}
	for _, isl := range nd.islands {
		if isl.dirty {
			return true
		}
	}
	return false
}

// Islands returns every live island, keyed by id, for callers that need
// to walk the whole set (debug drawing, serialization).
func (nd *NavData) Islands() map[IslandId]*Island { return nd.islands }

// LinksFrom returns the off-mesh links departing nr.
func (nd *NavData) LinksFrom(nr NodeRef) []*OffMeshLink {
	ids := nd.nodeLinks[nr]
	out := make([]*OffMeshLink, 0, len(ids))
	for id := range ids {
		if l, ok := nd.offMeshLinks[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// AddAnimationLink registers a user-declared off-mesh link between two
// nodes, with world-space portals given directly (spec.md §6). When
// bidirectional, a second symmetric record is created with a fresh id and
// returned as the second value.
func (nd *NavData) AddAnimationLink(start, end NodeRef, startPortal, endPortal [2]geom.Vec3, cost float32, kind int, bidirectional bool) (OffMeshLinkId, *OffMeshLinkId) {
	fwd := &OffMeshLink{
		ID: NewOffMeshLinkId(), Kind: AnimationLink,
		Start: start, End: end,
		StartPortal: startPortal, EndPortal: endPortal,
		Cost: cost, AnimationKind: kind,
	}
	nd.registerLink(fwd)

	if !bidirectional {
		return fwd.ID, nil
	}
	bwd := &OffMeshLink{
		ID: NewOffMeshLinkId(), Kind: AnimationLink,
		Start: end, End: start,
		StartPortal: endPortal, EndPortal: startPortal,
		Cost: cost, AnimationKind: kind,
	}
	nd.registerLink(bwd)
	id := bwd.ID
	return fwd.ID, &id
}

// RemoveOffMeshLink drops a link and, if its start node no longer has any
// departing link, that node's modified-node cache entry.
func (nd *NavData) RemoveOffMeshLink(id OffMeshLinkId) {
	link, ok := nd.offMeshLinks[id]
	if !ok {
		return
	}
	delete(nd.offMeshLinks, id)
	if set := nd.nodeLinks[link.Start]; set != nil {
		delete(set, id)
		if len(set) == 0 {
			delete(nd.nodeLinks, link.Start)
			delete(nd.modifiedNodes, link.Start)
		}
	}
}

func (nd *NavData) registerLink(l *OffMeshLink) {
	nd.offMeshLinks[l.ID] = l
	set := nd.nodeLinks[l.Start]
	if set == nil {
		set = make(map[OffMeshLinkId]bool)
		nd.nodeLinks[l.Start] = set
	}
	set[l.ID] = true
}

// Update is the core mutation described in spec.md §4.2: it restitches
// dirty islands against the BBH of live islands, tears down links broken
// by dirty/deleted islands, recomputes the modified-node cache for every
// node touched, and rebuilds the cross-island region union-find. It
// returns the off-mesh links dropped and the islands considered changed
// this call.
func (nd *NavData) Update(edgeLinkDistance float32) (dropped []OffMeshLinkId, changedIslands []IslandId) {
	for id, isl := range nd.islands {
		if isl.dirty {
			nd.dirty[id] = true
		}
	}
	changed := make(map[IslandId]bool)
	for id := range nd.dirty {
		changed[id] = true
	}
	for id := range nd.deleted {
		changed[id] = true
	}

	toRemodify := make(map[NodeRef]bool)
	droppedSet := make(map[OffMeshLinkId]bool)

	// Step 2: tear down links invalidated by changed islands.
	for nr, links := range nd.nodeLinks {
		if changed[nr.Island] {
			for id := range links {
				droppedSet[id] = true
				delete(nd.offMeshLinks, id)
			}
			delete(nd.nodeLinks, nr)
			delete(nd.modifiedNodes, nr)
			continue
		}
		for id := range links {
			link := nd.offMeshLinks[id]
			if link == nil || !changed[link.End.Island] {
				continue
			}
			delete(links, id)
			delete(nd.offMeshLinks, id)
			droppedSet[id] = true
			toRemodify[nr] = true
		}
		if len(links) == 0 {
			delete(nd.nodeLinks, nr)
		}
	}

	// Remove deleted islands from the live set now that their links are gone.
	for id := range nd.deleted {
		delete(nd.islands, id)
		delete(nd.dirty, id)
	}
	nd.deleted = make(map[IslandId]bool)

	if len(nd.dirty) == 0 {
		nd.rebuildRegions()
		for nr := range toRemodify {
			nd.modifiedNodes[nr] = nd.recomputeModifiedNode(nr, edgeLinkDistance)
		}
		return linkIDsToSlice(droppedSet), islandIDsToSlice(changed)
	}

	// Step 4: BBH over every live island's world bounds.
	ids := make([]IslandId, 0, len(nd.islands))
	for id := range nd.islands {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return islandLess(ids[i], ids[j]) })

	items := make([]geom.Item, len(ids))
	for i, id := range ids {
		items[i] = geom.Item{Bounds: nd.islands[id].WorldBounds(), Index: i}
	}
	bbh := geom.NewBBH(items)

	for i, aID := range ids {
		if !nd.dirty[aID] {
			continue
		}
		query := items[i].Bounds.Expanded(edgeLinkDistance)
		var hits []int
		hits = bbh.Query(query, hits[:0])
		for _, hi := range hits {
			bID := ids[hi]
			if bID == aID {
				continue
			}
			if nd.dirty[bID] && !islandLess(aID, bID) {
				continue // dirty-dirty pair: only the aID < bID ordering processes it
			}
			nd.stitchIslands(aID, bID, edgeLinkDistance, toRemodify)
		}
	}

	for nr := range toRemodify {
		nd.modifiedNodes[nr] = nd.recomputeModifiedNode(nr, edgeLinkDistance)
	}

	for id := range nd.dirty {
		nd.islands[id].dirty = false
	}
	nd.dirty = make(map[IslandId]bool)

	nd.rebuildRegions()

	return linkIDsToSlice(droppedSet), islandIDsToSlice(changed)
}

func islandIDsToSlice(m map[IslandId]bool) []IslandId {
	out := make([]IslandId, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

func linkIDsToSlice(m map[OffMeshLinkId]bool) []OffMeshLinkId {
	out := make([]OffMeshLinkId, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}
