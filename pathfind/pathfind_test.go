package pathfind

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

// twoTriMesh is a unit square split into two triangles sharing the
// diagonal (0,2), so a path from one triangle to the other must cross
// exactly one intra-island edge.
func twoTriMesh(t *testing.T) *navmesh.Mesh {
	t.Helper()
	raw := &navmesh.RawMesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Polygons:  [][]int{{0, 1, 2}, {0, 2, 3}},
		TypeIndex: []int{0, 0},
	}
	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	return mesh
}

func squareMesh(t *testing.T, originX float32) *navmesh.Mesh {
	t.Helper()
	raw := &navmesh.RawMesh{
		Vertices: []geom.Vec3{
			{X: originX + 0, Y: 0}, {X: originX + 1, Y: 0},
			{X: originX + 1, Y: 1}, {X: originX + 0, Y: 1},
		},
		Polygons:  [][]int{{0, 1, 2, 3}},
		TypeIndex: []int{0},
	}
	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	return mesh
}

func TestFindPathSameNodeReturnsSingleSegment(t *testing.T) {
	nd := island.NewNavData()
	id := nd.AddIsland()
	nd.Island(id).SetNavMesh(island.Identity, twoTriMesh(t), nil)
	nd.Update(0.1)

	n := island.NodeRef{Island: id, Polygon: 0}
	path, stats := FindPath(nd, n, n, geom.Vec3{X: 0.1, Y: 0.1}, geom.Vec3{X: 0.2, Y: 0.1}, nil, nil)
	require.True(t, stats.Success)
	require.Len(t, path.Segments, 1)
	require.NotNil(t, path.Segments[0].Island)
	require.Equal(t, []int{0}, path.Segments[0].Island.Corridor)
}

func TestFindPathAcrossIntraIslandEdge(t *testing.T) {
	nd := island.NewNavData()
	id := nd.AddIsland()
	nd.Island(id).SetNavMesh(island.Identity, twoTriMesh(t), nil)
	nd.Update(0.1)

	start := island.NodeRef{Island: id, Polygon: 0}
	end := island.NodeRef{Island: id, Polygon: 1}

	path, stats := FindPath(nd, start, end, geom.Vec3{X: 0.8, Y: 0.2}, geom.Vec3{X: 0.2, Y: 0.8}, nil, nil)
	require.True(t, stats.Success)
	require.Len(t, path.Segments, 1)
	seg := path.Segments[0].Island
	require.Equal(t, []int{0, 1}, seg.Corridor)
	require.Len(t, seg.PortalEdges, 1)
}

func TestFindPathCrossesOffMeshLinkBetweenIslands(t *testing.T) {
	nd := island.NewNavData()
	aID := nd.AddIsland()
	nd.Island(aID).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	bID := nd.AddIsland()
	nd.Island(bID).SetNavMesh(island.Identity, squareMesh(t, 1), nil)
	nd.Update(0.1)

	start := island.NodeRef{Island: aID, Polygon: 0}
	end := island.NodeRef{Island: bID, Polygon: 0}

	path, stats := FindPath(nd, start, end, geom.Vec3{X: 0.2, Y: 0.5}, geom.Vec3{X: 1.8, Y: 0.5}, nil, nil)
	require.True(t, stats.Success)
	require.Len(t, path.Segments, 3)
	require.NotNil(t, path.Segments[0].Island)
	require.NotNil(t, path.Segments[1].Link)
	require.NotNil(t, path.Segments[2].Island)
	require.Equal(t, start, path.Segments[1].Link.Start)
	require.Equal(t, end, path.Segments[1].Link.End)
}

func TestFindPathUnreachableNodeFailsFast(t *testing.T) {
	nd := island.NewNavData()
	aID := nd.AddIsland()
	nd.Island(aID).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	bID := nd.AddIsland()
	nd.Island(bID).SetNavMesh(island.Identity, squareMesh(t, 100), nil)
	nd.Update(0.1)

	start := island.NodeRef{Island: aID, Polygon: 0}
	end := island.NodeRef{Island: bID, Polygon: 0}

	path, stats := FindPath(nd, start, end, geom.Vec3{}, geom.Vec3{}, nil, nil)
	require.False(t, stats.Success)
	require.Equal(t, 0, stats.ExploredNodes)
	require.Nil(t, path)
}

func TestFindPathHonoursAgentOverrideCost(t *testing.T) {
	nd := island.NewNavData()
	id := nd.AddIsland()
	types := island.NewNodeTypes()
	nt, err := types.Add(5.0)
	require.NoError(t, err)

	nd.Island(id).SetNavMesh(island.Identity, twoTriMesh(t), map[int]island.NodeType{0: nt})
	nd.Update(0.1)

	start := island.NodeRef{Island: id, Polygon: 0}
	end := island.NodeRef{Island: id, Polygon: 1}

	_, baseline := FindPath(nd, start, end, geom.Vec3{X: 0.8, Y: 0.2}, geom.Vec3{X: 0.2, Y: 0.8}, types, nil)
	require.True(t, baseline.Success)
	require.Equal(t, float32(5), nodeCost(nd, start, types, nil))

	overrides := map[island.NodeType]float32{nt: 1.0}
	_, overridden := FindPath(nd, start, end, geom.Vec3{X: 0.8, Y: 0.2}, geom.Vec3{X: 0.2, Y: 0.8}, types, overrides)
	require.True(t, overridden.Success)
	require.Equal(t, float32(1), nodeCost(nd, start, types, overrides))
}
