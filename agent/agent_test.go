package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navpath"
)

func TestDoesAgentNeedRepathNoTargetNoPath(t *testing.T) {
	ag := &Agent{}
	result := DoesAgentNeedRepath(ag, nil, nil, nil, nil)
	require.Equal(t, DoNothing, result.Kind)
}

func TestDoesAgentNeedRepathNoTargetWithPath(t *testing.T) {
	ag := &Agent{Path: &navpath.Path{}}
	result := DoesAgentNeedRepath(ag, nil, nil, nil, nil)
	require.Equal(t, ClearPathNoTarget, result.Kind)
}

func TestDoesAgentNeedRepathBadAgentSample(t *testing.T) {
	ag := &Agent{Target: Target{Kind: TargetPoint}}
	targetNode := island.NodeRef{}
	result := DoesAgentNeedRepath(ag, nil, &targetNode, nil, nil)
	require.Equal(t, ClearPathBadAgent, result.Kind)
}

func TestDoesAgentNeedRepathBadTargetSample(t *testing.T) {
	ag := &Agent{Target: Target{Kind: TargetPoint}}
	agentNode := island.NodeRef{}
	result := DoesAgentNeedRepath(ag, &agentNode, nil, nil, nil)
	require.Equal(t, ClearPathBadTarget, result.Kind)
}

func TestDoesAgentNeedRepathNoPathYet(t *testing.T) {
	ag := &Agent{Target: Target{Kind: TargetPoint}}
	agentNode := island.NodeRef{}
	targetNode := island.NodeRef{}
	result := DoesAgentNeedRepath(ag, &agentNode, &targetNode, nil, nil)
	require.Equal(t, NeedsRepath, result.Kind)
}

func TestDoesAgentNeedRepathInvalidatedPath(t *testing.T) {
	islID := island.NewIslandId()
	path := &navpath.Path{
		Segments: []navpath.Segment{
			{Island: &navpath.IslandSegment{Island: islID, Corridor: []int{0}}},
		},
	}
	ag := &Agent{Target: Target{Kind: TargetPoint}, Path: path}
	agentNode := island.NodeRef{Island: islID, Polygon: 0}
	targetNode := island.NodeRef{Island: islID, Polygon: 0}

	result := DoesAgentNeedRepath(ag, &agentNode, &targetNode, nil, map[island.IslandId]bool{islID: true})
	require.Equal(t, NeedsRepath, result.Kind)
}

func TestDoesAgentNeedRepathFollowsValidPath(t *testing.T) {
	islID := island.NewIslandId()
	path := &navpath.Path{
		Segments: []navpath.Segment{
			{Island: &navpath.IslandSegment{Island: islID, Corridor: []int{0, 1}, PortalEdges: []int{2}}},
		},
	}
	ag := &Agent{Target: Target{Kind: TargetPoint}, Path: path}
	agentNode := island.NodeRef{Island: islID, Polygon: 0}
	targetNode := island.NodeRef{Island: islID, Polygon: 1}

	result := DoesAgentNeedRepath(ag, &agentNode, &targetNode, nil, nil)
	require.Equal(t, FollowPath, result.Kind)
	require.Equal(t, navpath.PathIndex{SegmentIndex: 0, PortalIndex: 0}, result.Start)
	require.Equal(t, navpath.PathIndex{SegmentIndex: 0, PortalIndex: 1}, result.End)
}

func TestDoesAgentNeedRepathAgentOvershotTarget(t *testing.T) {
	islID := island.NewIslandId()
	path := &navpath.Path{
		Segments: []navpath.Segment{
			{Island: &navpath.IslandSegment{Island: islID, Corridor: []int{0, 1}, PortalEdges: []int{2}}},
		},
	}
	ag := &Agent{Target: Target{Kind: TargetPoint}, Path: path}
	agentNode := island.NodeRef{Island: islID, Polygon: 1}
	targetNode := island.NodeRef{Island: islID, Polygon: 0}

	result := DoesAgentNeedRepath(ag, &agentNode, &targetNode, nil, nil)
	require.Equal(t, NeedsRepath, result.Kind)
}

func TestTickPausedSkipsEverything(t *testing.T) {
	ag := &Agent{Paused: true}
	pr := Tick(nil, ag, nil, nil, geom.Vec3{}, geom.Vec3{}, nil, nil, nil)
	require.Equal(t, Paused, ag.State)
	require.False(t, pr.Ran)
}

func TestTickUsingAnimationLinkZeroesDesiredMove(t *testing.T) {
	ag := &Agent{UsingAnimationLink: true, DesiredMove: geom.Vec3{X: 1}}
	Tick(nil, ag, nil, nil, geom.Vec3{}, geom.Vec3{}, nil, nil, nil)
	require.Equal(t, UsingAnimationLink, ag.State)
	require.Equal(t, geom.Vec3{}, ag.DesiredMove)
}

func TestTargetReachedDistanceDefaultsToRadius(t *testing.T) {
	ag := &Agent{Radius: 1, TargetReachedCondition: TargetReachedCondition{Kind: Distance}}
	reached := ag.targetReached(nil, navpath.PathIndex{}, geom.Vec3{X: 0}, navpath.PathIndex{}, geom.Vec3{X: 0.5}, navpath.PathIndex{}, navpath.StraightPathStep{Kind: navpath.StepWaypoint, Point: geom.Vec3{X: 0.5}})
	require.True(t, reached)
}

func TestTargetReachedVisibleAtDistanceRequiresTerminalWaypoint(t *testing.T) {
	ag := &Agent{Radius: 1, TargetReachedCondition: TargetReachedCondition{Kind: VisibleAtDistance}}
	endIdx := navpath.PathIndex{SegmentIndex: 0, PortalIndex: 2}
	notTerminal := navpath.PathIndex{SegmentIndex: 0, PortalIndex: 1}

	reached := ag.targetReached(nil, navpath.PathIndex{}, geom.Vec3{}, endIdx, geom.Vec3{X: 0.5}, notTerminal, navpath.StraightPathStep{Kind: navpath.StepWaypoint, Point: geom.Vec3{X: 0.5}})
	require.False(t, reached)

	reached = ag.targetReached(nil, navpath.PathIndex{}, geom.Vec3{}, endIdx, geom.Vec3{X: 0.5}, endIdx, navpath.StraightPathStep{Kind: navpath.StepWaypoint, Point: geom.Vec3{X: 0.5}})
	require.True(t, reached)
}
