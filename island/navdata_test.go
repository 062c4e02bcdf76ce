package island

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

func squareMesh(t *testing.T, originX float32) *navmesh.Mesh {
	t.Helper()
	raw := &navmesh.RawMesh{
		Vertices: []geom.Vec3{
			{X: originX + 0, Y: 0, Z: 0},
			{X: originX + 1, Y: 0, Z: 0},
			{X: originX + 1, Y: 1, Z: 0},
			{X: originX + 0, Y: 1, Z: 0},
		},
		Polygons:  [][]int{{0, 1, 2, 3}},
		TypeIndex: []int{0},
	}
	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	return mesh
}

// Two 1x1 squares placed edge to edge along x=1 should stitch into two
// symmetric boundary links and a single joined region, per spec.md §4.2
// steps 5 and 7.
func TestNavDataUpdateStitchesAdjacentIslands(t *testing.T) {
	nd := NewNavData()

	aID := nd.AddIsland()
	nd.Island(aID).SetNavMesh(Identity, squareMesh(t, 0), nil)

	bID := nd.AddIsland()
	nd.Island(bID).SetNavMesh(Identity, squareMesh(t, 1), nil)

	dropped, changed := nd.Update(0.1)
	require.Empty(t, dropped)
	require.ElementsMatch(t, []IslandId{aID, bID}, changed)

	aNode := NodeRef{Island: aID, Polygon: 0}
	bNode := NodeRef{Island: bID, Polygon: 0}

	require.True(t, nd.AreNodesConnected(aNode, bNode))

	linksFromA := nd.LinksFrom(aNode)
	require.Len(t, linksFromA, 1)
	require.Equal(t, BoundaryLink, linksFromA[0].Kind)
	require.Equal(t, bNode, linksFromA[0].End)

	linksFromB := nd.LinksFrom(bNode)
	require.Len(t, linksFromB, 1)
	require.Equal(t, aNode, linksFromB[0].End)
}

// Islands far apart (beyond edge_link_distance) must not stitch.
func TestNavDataUpdateDoesNotStitchDistantIslands(t *testing.T) {
	nd := NewNavData()

	aID := nd.AddIsland()
	nd.Island(aID).SetNavMesh(Identity, squareMesh(t, 0), nil)

	bID := nd.AddIsland()
	nd.Island(bID).SetNavMesh(Identity, squareMesh(t, 100), nil)

	_, _ = nd.Update(0.1)

	aNode := NodeRef{Island: aID, Polygon: 0}
	bNode := NodeRef{Island: bID, Polygon: 0}
	require.False(t, nd.AreNodesConnected(aNode, bNode))
	require.Empty(t, nd.LinksFrom(aNode))
}

// Removing an island tears down its links and is reported as a change on
// the next Update, per spec.md §4.2 steps 1-2.
func TestNavDataUpdateRemovesIslandAndDropsLinks(t *testing.T) {
	nd := NewNavData()

	aID := nd.AddIsland()
	nd.Island(aID).SetNavMesh(Identity, squareMesh(t, 0), nil)
	bID := nd.AddIsland()
	nd.Island(bID).SetNavMesh(Identity, squareMesh(t, 1), nil)
	_, _ = nd.Update(0.1)

	aNode := NodeRef{Island: aID, Polygon: 0}
	require.Len(t, nd.LinksFrom(aNode), 1)

	nd.RemoveIsland(bID)
	dropped, changed := nd.Update(0.1)
	require.Len(t, dropped, 2) // both symmetric records torn down
	require.Contains(t, changed, bID)

	require.Nil(t, nd.Island(bID))
	require.Empty(t, nd.LinksFrom(aNode))
}

// A ModifiedNode carves the stitched portal out of the boundary edge it
// sits on, leaving the remaining three edges of a square intact.
func TestNavDataModifiedNodeCarvesPortal(t *testing.T) {
	nd := NewNavData()

	aID := nd.AddIsland()
	nd.Island(aID).SetNavMesh(Identity, squareMesh(t, 0), nil)
	bID := nd.AddIsland()
	nd.Island(bID).SetNavMesh(Identity, squareMesh(t, 1), nil)
	_, _ = nd.Update(0.1)

	aNode := NodeRef{Island: aID, Polygon: 0}
	mn, ok := nd.ModifiedNode(aNode)
	require.True(t, ok)
	// three full-length boundary edges survive (left, top, bottom); the
	// right edge was entirely consumed by the stitched portal.
	require.Len(t, mn.Boundary, 3)
}
