package debug

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/agent"
	"github.com/arl/landmass/archipelago"
	"github.com/arl/landmass/coords"
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navmesh"
)

type recordingDrawer struct {
	points    []PointType
	lines     []LineType
	triangles int
}

func (r *recordingDrawer) AddPoint(pt PointType, p geom.Vec3)         { r.points = append(r.points, pt) }
func (r *recordingDrawer) AddLine(lt LineType, pts [2]geom.Vec3)      { r.lines = append(r.lines, lt) }
func (r *recordingDrawer) AddTriangle(tt TriangleType, pts [3]geom.Vec3) { r.triangles++ }

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

func TestDrawArchipelagoDebugReportsPolygonAndAgentElements(t *testing.T) {
	a := archipelago.New(archipelago.DefaultAgentOptions(0.5))
	id := a.AddIsland()
	a.GetIslandMut(id).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	a.Update(0.1)

	ag := &agent.Agent{
		Position: geom.Vec3{X: 1, Y: 5}, Radius: 0.5, MaxSpeed: 1,
		Target: agent.Target{Kind: agent.TargetPoint, Point: geom.Vec3{X: 9, Y: 5}},
	}
	a.AddAgent(ag)
	a.Update(0.1)

	drawer := &recordingDrawer{}
	err := DrawArchipelagoDebug(a, coords.XYZ, drawer)
	require.NoError(t, err)

	require.NotZero(t, drawer.triangles)
	require.NotEmpty(t, drawer.points)

	var sawAgentPosition, sawTarget bool
	for _, p := range drawer.points {
		if p.Kind == AgentPosition {
			sawAgentPosition = true
		}
		if p.Kind == TargetPosition {
			sawTarget = true
		}
	}
	require.True(t, sawAgentPosition)
	require.True(t, sawTarget)
}

func TestDrawArchipelagoDebugFailsWhileNavDataDirty(t *testing.T) {
	a := archipelago.New(archipelago.DefaultAgentOptions(0.5))
	id := a.AddIsland()
	a.GetIslandMut(id).SetNavMesh(island.Identity, squareMesh(t, 0), nil)

	err := DrawArchipelagoDebug(a, coords.XYZ, &recordingDrawer{})
	require.ErrorIs(t, err, ErrNavDataDirty)
}

func TestDrawArchipelagoDebugDrawsBoundaryLinkBetweenStitchedIslands(t *testing.T) {
	a := archipelago.New(archipelago.DefaultAgentOptions(0.5))
	aID := a.AddIsland()
	a.GetIslandMut(aID).SetNavMesh(island.Identity, squareMesh(t, 0), nil)
	bID := a.AddIsland()
	a.GetIslandMut(bID).SetNavMesh(island.Identity, squareMesh(t, 10), nil)
	a.Update(0.1)

	drawer := &recordingDrawer{}
	require.NoError(t, DrawArchipelagoDebug(a, coords.XYZ, drawer))

	var sawBoundaryLink bool
	for _, l := range drawer.lines {
		if l.Kind == BoundaryLink {
			sawBoundaryLink = true
		}
	}
	require.True(t, sawBoundaryLink)
}
