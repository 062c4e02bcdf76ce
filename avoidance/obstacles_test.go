package avoidance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

// twoQuadMesh is two 10x10 quads sharing the vertical edge at x=10, so a
// polygon-connectivity edge separates them from a single boundary wall.
func twoQuadMesh(t *testing.T) *navmesh.Mesh {
	t.Helper()
	raw := &navmesh.RawMesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			{X: 20, Y: 0}, {X: 20, Y: 10},
		},
		Polygons:  [][]int{{0, 1, 2, 3}, {1, 4, 5, 2}},
		TypeIndex: []int{0, 0},
	}
	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	return mesh
}

func TestCollectBorderObstaclesFindsEveryEdgeOfAnIsolatedIsland(t *testing.T) {
	nd := island.NewNavData()
	id := nd.AddIsland()
	nd.Island(id).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	nd.Update(0.1)

	node := island.NodeRef{Island: id, Polygon: 0}
	obstacles := collectBorderObstacles(nd, node, geom.Vec2{X: 5, Y: 5}, 20)

	require.Len(t, obstacles, 4)
}

func TestCollectBorderObstaclesHonoursDistanceLimit(t *testing.T) {
	nd := island.NewNavData()
	id := nd.AddIsland()
	nd.Island(id).SetNavMesh(island.Identity, twoQuadMesh(t), nil)
	nd.Update(0.1)

	node := island.NodeRef{Island: id, Polygon: 0}
	agentPoint := geom.Vec2{X: 5, Y: 5}

	// A short limit never crosses the shared edge into polygon 1: only
	// polygon 0's three unconnected walls are collected.
	near := collectBorderObstacles(nd, node, agentPoint, 3)
	require.Len(t, near, 3)

	// A limit reaching past the shared edge explores into polygon 1 too,
	// picking up its far three walls as well.
	far := collectBorderObstacles(nd, node, agentPoint, 20)
	require.Len(t, far, 6)
}
