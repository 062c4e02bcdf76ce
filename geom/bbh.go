package geom

import "sort"

// Item is anything a BBH can index: a bounds and an opaque payload index.
type Item struct {
	Bounds Bounds
	Index  int
}

// BBH is a simple static bounding-box hierarchy built top-down over a
// fixed item set, used both for island-to-island candidate queries
// (island.NavData.update, spec.md §4.2 step 4) and for the boundary-edge
// queries of the stitching step (step 5). It is rebuilt from scratch
// whenever the owning island set changes; region union-find rebuilds are
// already O(links) per spec.md §9, so there is no need for an incremental
// tree here either.
//
// Grounded on recast/chunkytrimesh.go's median-split build (itself a flat
// BBH over triangles for rasterization queries), adapted to 2-D bounds over
// arbitrary payloads instead of fixed triangle indices.
type BBH struct {
	nodes []bbhNode
	items []Item
}

type bbhNode struct {
	bounds       Bounds
	left, right  int // child node indices, or -1 for leaves
	itemLo, itemHi int // [itemLo, itemHi) into items, valid on leaves only
}

// NewBBH builds a hierarchy over the given items. The Index field of each
// Item is preserved and returned verbatim by queries.
func NewBBH(items []Item) *BBH {
	b := &BBH{items: append([]Item(nil), items...)}
	if len(b.items) == 0 {
		return b
	}
	b.nodes = make([]bbhNode, 0, 2*len(b.items))
	b.build(0, len(b.items))
	return b
}

// build recursively splits items[lo:hi] along its longest axis at the
// median, the same strategy recast.go's chunky-trimesh builder uses for
// rasterization acceleration structures.
func (b *BBH) build(lo, hi int) int {
	bounds := EmptyBounds()
	for _, it := range b.items[lo:hi] {
		bounds = bounds.Union(it.Bounds)
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, bbhNode{bounds: bounds, left: -1, right: -1})

	if hi-lo <= 4 {
		b.nodes[idx].itemLo = lo
		b.nodes[idx].itemHi = hi
		return idx
	}

	dx := bounds.Max.X - bounds.Min.X
	dy := bounds.Max.Y - bounds.Min.Y
	items := b.items[lo:hi]
	if dx >= dy {
		sort.Slice(items, func(i, j int) bool {
			return items[i].Bounds.Min.X+items[i].Bounds.Max.X < items[j].Bounds.Min.X+items[j].Bounds.Max.X
		})
	} else {
		sort.Slice(items, func(i, j int) bool {
			return items[i].Bounds.Min.Y+items[i].Bounds.Max.Y < items[j].Bounds.Min.Y+items[j].Bounds.Max.Y
		})
	}

	mid := lo + (hi-lo)/2
	left := b.build(lo, mid)
	right := b.build(mid, hi)
	b.nodes[idx].left = left
	b.nodes[idx].right = right
	b.nodes[idx].itemLo, b.nodes[idx].itemHi = -1, -1
	return idx
}

// Query appends to dst the Index of every item whose bounds overlap q, and
// returns the extended slice.
func (b *BBH) Query(q Bounds, dst []int) []int {
	if len(b.nodes) == 0 {
		return dst
	}
	return b.queryNode(0, q, dst)
}

func (b *BBH) queryNode(n int, q Bounds, dst []int) []int {
	node := &b.nodes[n]
	if !node.bounds.Overlaps(q) {
		return dst
	}
	if node.left < 0 {
		for i := node.itemLo; i < node.itemHi; i++ {
			if b.items[i].Bounds.Overlaps(q) {
				dst = append(dst, b.items[i].Index)
			}
		}
		return dst
	}
	dst = b.queryNode(node.left, q, dst)
	dst = b.queryNode(node.right, q, dst)
	return dst
}
