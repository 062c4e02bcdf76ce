package archipelago

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/agent"
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

func squareMesh(t *testing.T, originX float32) *navmesh.Mesh {
	t.Helper()
	raw := &navmesh.RawMesh{
		Vertices: []geom.Vec3{
			{X: originX + 0, Y: 0}, {X: originX + 10, Y: 0},
			{X: originX + 10, Y: 10}, {X: originX + 0, Y: 10},
		},
		Polygons:  [][]int{{0, 1, 2, 3}},
		TypeIndex: []int{0},
	}
	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	return mesh
}

func newTestArchipelago(t *testing.T) (*Archipelago, island.IslandId) {
	t.Helper()
	a := New(DefaultAgentOptions(0.5))
	id := a.AddIsland()
	a.GetIslandMut(id).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	return a, id
}

func TestUpdateMovesAgentTowardTargetAndReportsPathingResult(t *testing.T) {
	a, _ := newTestArchipelago(t)

	ag := &agent.Agent{
		Position: geom.Vec3{X: 1, Y: 5},
		Radius:   0.5, MaxSpeed: 2,
		Target:                 agent.Target{Kind: agent.TargetPoint, Point: geom.Vec3{X: 9, Y: 5}},
		TargetReachedCondition: agent.TargetReachedCondition{Kind: agent.Distance},
	}
	id := a.AddAgent(ag)

	results := a.Update(0.1)
	require.Len(t, results, 1)
	require.Equal(t, id, results[0].AgentId)
	require.True(t, results[0].Success)

	require.Equal(t, agent.Moving, ag.State)
	require.NotZero(t, ag.DesiredMove.X)
}

func TestUpdateWithoutTargetIsIdleAndReportsNoPathingResult(t *testing.T) {
	a, _ := newTestArchipelago(t)

	ag := &agent.Agent{Position: geom.Vec3{X: 5, Y: 5}, Radius: 0.5, MaxSpeed: 1}
	a.AddAgent(ag)

	results := a.Update(0.1)
	require.Empty(t, results)
	require.Equal(t, agent.Idle, ag.State)
}

func TestAgentOffNavMeshIsFlaggedAndDesiredMoveCleared(t *testing.T) {
	a, _ := newTestArchipelago(t)

	ag := &agent.Agent{
		Position: geom.Vec3{X: 500, Y: 500}, Radius: 0.5, MaxSpeed: 1,
		Target: agent.Target{Kind: agent.TargetPoint, Point: geom.Vec3{X: 5, Y: 5}},
	}
	a.AddAgent(ag)

	a.Update(0.1)
	require.Equal(t, agent.AgentNotOnNavMesh, ag.State)
	require.Zero(t, ag.DesiredMove)
}

func TestHeadOnAgentsAvoidEachOtherDuringUpdate(t *testing.T) {
	a, _ := newTestArchipelago(t)

	left := &agent.Agent{
		Position: geom.Vec3{X: 4, Y: 5}, Velocity: geom.Vec3{X: 1}, Radius: 0.5, MaxSpeed: 1,
		Target: agent.Target{Kind: agent.TargetPoint, Point: geom.Vec3{X: 9, Y: 5}},
	}
	right := &agent.Agent{
		Position: geom.Vec3{X: 6, Y: 5}, Velocity: geom.Vec3{X: -1}, Radius: 0.5, MaxSpeed: 1,
		Target: agent.Target{Kind: agent.TargetPoint, Point: geom.Vec3{X: 1, Y: 5}},
	}
	a.AddAgent(left)
	a.AddAgent(right)

	a.Update(0.1)
	require.NotZero(t, left.DesiredMove.Y)
	require.NotZero(t, right.DesiredMove.Y)
}

func TestCharacterBlocksAgentAvoidance(t *testing.T) {
	a, _ := newTestArchipelago(t)

	ag := &agent.Agent{
		Position: geom.Vec3{X: 2, Y: 5}, Velocity: geom.Vec3{X: 1}, Radius: 0.5, MaxSpeed: 1,
		Target: agent.Target{Kind: agent.TargetPoint, Point: geom.Vec3{X: 9, Y: 5}},
	}
	a.AddAgent(ag)
	a.AddCharacter(&Character{Position: geom.Vec3{X: 3, Y: 5.1}, Radius: 0.5})

	a.Update(0.1)
	require.NotZero(t, ag.DesiredMove.Y)
}

func TestRemoveAgentAndCharacter(t *testing.T) {
	a, _ := newTestArchipelago(t)

	agID := a.AddAgent(&agent.Agent{Position: geom.Vec3{X: 5, Y: 5}, Radius: 0.5, MaxSpeed: 1})
	chID := a.AddCharacter(&Character{Position: geom.Vec3{X: 6, Y: 5}, Radius: 0.5})

	a.RemoveAgent(agID)
	a.RemoveCharacter(chID)

	require.Nil(t, a.GetAgent(agID))
	require.Nil(t, a.GetCharacter(chID))
}

func TestNodeTypeLifecycleAndReferencedRemovalGuard(t *testing.T) {
	a, id := newTestArchipelago(t)

	nt, err := a.AddNodeType(2.0)
	require.NoError(t, err)

	cost, ok := a.GetNodeTypeCost(nt)
	require.True(t, ok)
	require.Equal(t, float32(2.0), cost)

	require.NoError(t, a.SetNodeTypeCost(nt, 5.0))
	cost, _ = a.GetNodeTypeCost(nt)
	require.Equal(t, float32(5.0), cost)

	a.GetIslandMut(id).SetNavMesh(island.Identity, squareMesh(t, 0), map[int]island.NodeType{0: nt})

	err = a.RemoveNodeType(nt)
	require.Error(t, err)

	a.GetIslandMut(id).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	require.NoError(t, a.RemoveNodeType(nt))
}

func TestAddNodeTypeRejectsNonPositiveCost(t *testing.T) {
	a, _ := newTestArchipelago(t)
	_, err := a.AddNodeType(0)
	require.Error(t, err)
	var want *island.NewNodeTypeError
	require.ErrorAs(t, err, &want)
}

func TestSamplePointOutOfRangeReturnsError(t *testing.T) {
	a, _ := newTestArchipelago(t)
	_, _, err := a.SamplePoint(geom.Vec3{X: 500, Y: 500})
	require.Error(t, err)
	var want *SamplePointError
	require.ErrorAs(t, err, &want)
}

func TestFindPathAcrossTwoStitchedIslandsReturnsWaypoints(t *testing.T) {
	a := New(DefaultAgentOptions(0.5))
	aID := a.AddIsland()
	a.GetIslandMut(aID).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	bID := a.AddIsland()
	a.GetIslandMut(bID).SetNavMesh(island.Identity, squareMesh(t, 10), nil)

	a.Update(0.1)

	waypoints, err := a.FindPath(geom.Vec3{X: 1, Y: 5}, geom.Vec3{X: 19, Y: 5}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, waypoints)
	require.InDelta(t, 19, waypoints[len(waypoints)-1].X, 0.1)
}

func TestFindPathWithNoConnectionReturnsNoPathError(t *testing.T) {
	a := New(DefaultAgentOptions(0.5))
	aID := a.AddIsland()
	a.GetIslandMut(aID).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	bID := a.AddIsland()
	a.GetIslandMut(bID).SetNavMesh(island.Identity, squareMesh(t, 1000), nil)

	a.Update(0.1)

	_, err := a.FindPath(geom.Vec3{X: 5, Y: 5}, geom.Vec3{X: 1005, Y: 5}, nil)
	require.Error(t, err)
	var want *FindPathError
	require.ErrorAs(t, err, &want)
	require.Equal(t, NoPath, want.Kind)
}

func TestAddAnimationLinkStitchesDisconnectedIslands(t *testing.T) {
	a := New(DefaultAgentOptions(0.5))
	aID := a.AddIsland()
	a.GetIslandMut(aID).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	bID := a.AddIsland()
	a.GetIslandMut(bID).SetNavMesh(island.Identity, squareMesh(t, 1000), nil)
	a.Update(0.1)

	_, err := a.AddAnimationLink(AnimationLink{
		StartEdge: [2]geom.Vec3{{X: 10, Y: 0}, {X: 10, Y: 10}},
		EndEdge:   [2]geom.Vec3{{X: 1000, Y: 0}, {X: 1000, Y: 10}},
		Cost:      1,
		Kind:      0,
	})
	require.NoError(t, err)
	a.Update(0.1)

	waypoints, err := a.FindPath(geom.Vec3{X: 5, Y: 5}, geom.Vec3{X: 1005, Y: 5}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, waypoints)
}
