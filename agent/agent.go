// Package agent is the per-tick crowd-member state machine of spec.md
// §4.5: it decides whether an agent needs a fresh path, advances it along
// its current corridor via the funnel, and resolves the target-reached
// and animation-link predicates. It does not move agents or own the
// pathfinding/avoidance implementations directly; Tick calls out to
// pathfind.FindPath and navpath.FindNextPointInStraightPath, the same
// division of labor the Archipelago orchestrator observes at a coarser
// grain.
//
// Grounded on crowd/crowd.go's per-agent state (CrowdAgentAnimation,
// CrowdAgentState, target/corner tracking) and its per-tick
// updateMoveRequest/updateTopologyOptimization staging, adapted
// from Detour's fixed target-reached-radius model to the richer
// {Distance, VisibleAtDistance, StraightPathDistance} predicate set and
// the off-mesh-link FSM this engine's animation links require.
package agent

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navpath"
	"github.com/arl/landmass/pathfind"
)

// State is the externally observable lifecycle state of an agent, per
// spec.md §4.5 step 2.
type State int

const (
	Idle State = iota
	Moving
	ReachedTarget
	UsingAnimationLink
	Paused
	AgentNotOnNavMesh
	TargetNotOnNavMesh
	NoPath
	ReachedAnimationLink
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	case ReachedTarget:
		return "reached-target"
	case UsingAnimationLink:
		return "using-animation-link"
	case Paused:
		return "paused"
	case AgentNotOnNavMesh:
		return "agent-not-on-navmesh"
	case TargetNotOnNavMesh:
		return "target-not-on-navmesh"
	case NoPath:
		return "no-path"
	case ReachedAnimationLink:
		return "reached-animation-link"
	default:
		return "unknown"
	}
}

// TargetKind distinguishes an agent's target, per spec.md §3.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPoint
	TargetEntityFollow
)

// Target is an agent's desired destination: either absent, a fixed world
// point, or a followed entity (resolved by the caller each tick into a
// Point before sampling, since this engine does not own an entity model).
type Target struct {
	Kind     TargetKind
	Point    geom.Vec3
	EntityID string
}

// ReachedKind selects which predicate TargetReachedCondition evaluates,
// per spec.md §4.5 step 3.
type ReachedKind int

const (
	Distance ReachedKind = iota
	VisibleAtDistance
	StraightPathDistance
)

// TargetReachedCondition configures how "arrived" is decided. Distance is
// optional; a nil value defaults to the agent's radius.
type TargetReachedCondition struct {
	Kind     ReachedKind
	Distance *float32
}

func (c TargetReachedCondition) resolvedDistance(radius float32) float32 {
	if c.Distance != nil {
		return *c.Distance
	}
	return radius
}

// PermittedAnimationLinkKinds restricts which animation-link "kind" tags
// an agent may use; All overrides Set.
type PermittedAnimationLinkKinds struct {
	All bool
	Set map[int]bool
}

func (p PermittedAnimationLinkKinds) Permits(kind int) bool {
	if p.All {
		return true
	}
	return p.Set[kind]
}

// ReachedAnimationLink records the off-mesh link an agent is currently
// poised to use, published once FollowPath detects it's within range of
// the link's start portal.
type ReachedAnimationLink struct {
	Link                 island.OffMeshLinkId
	StartPoint, EndPoint geom.Vec3
	StartNode, EndNode   island.NodeRef
}

// Agent is one pathfinding crowd member, per spec.md §3's Agent entity.
type Agent struct {
	// User-writable fields.
	Position                   geom.Vec3
	Velocity                   geom.Vec3
	Radius                     float32
	DesiredSpeed               float32
	MaxSpeed                   float32
	Target                     Target
	TargetReachedCondition     TargetReachedCondition
	AnimationLinkReachedDistance *float32
	PermittedAnimationLinkKinds PermittedAnimationLinkKinds
	NodeTypeCostOverrides       map[island.NodeType]float32
	Paused                      bool

	// Engine-writable fields.
	Path                  *navpath.Path
	DesiredMove           geom.Vec3
	State                 State
	CurrentAnimationLink  *ReachedAnimationLink
	UsingAnimationLink    bool
	AvoidanceDebug        any
}

// PathingResult is the per-tick telemetry spec.md §4.7 step 7 collects
// for every agent that invoked the pathfinder this tick.
type PathingResult struct {
	Success       bool
	ExploredNodes int
	Ran           bool
}

// Tick runs spec.md §4.5's per-tick decision sequence for one agent:
// paused/using-animation-link short-circuits first, then
// DoesAgentNeedRepath, then the corresponding state transition. agentPt
// and targetPt are this tick's sampled world positions (agentNode and
// targetNode are nil when sampling failed); nd and types are the shared
// navigation data and
// node-type registry.
func Tick(nd *island.NavData, ag *Agent, agentNode, targetNode *island.NodeRef, agentPt, targetPt geom.Vec3, invalidatedLinks map[island.OffMeshLinkId]bool, invalidatedIslands map[island.IslandId]bool, types *island.NodeTypes) PathingResult {
	if ag.Paused {
		ag.State = Paused
		return PathingResult{}
	}
	if ag.UsingAnimationLink {
		ag.State = UsingAnimationLink
		ag.DesiredMove = geom.Vec3{}
		return PathingResult{}
	}

	result := DoesAgentNeedRepath(ag, agentNode, targetNode, invalidatedLinks, invalidatedIslands)

	switch result.Kind {
	case DoNothing:
		ag.State = Idle
		ag.DesiredMove = geom.Vec3{}
		return PathingResult{}

	case ClearPathNoTarget:
		ag.Path = nil
		ag.State = Idle
		ag.DesiredMove = geom.Vec3{}
		return PathingResult{}

	case ClearPathBadAgent:
		ag.Path = nil
		ag.State = AgentNotOnNavMesh
		ag.DesiredMove = geom.Vec3{}
		return PathingResult{}

	case ClearPathBadTarget:
		ag.Path = nil
		ag.State = TargetNotOnNavMesh
		ag.DesiredMove = geom.Vec3{}
		return PathingResult{}

	case NeedsRepath:
		path, stats := pathfind.FindPath(nd, *agentNode, *targetNode, agentPt, targetPt, types, ag.NodeTypeCostOverrides)
		pr := PathingResult{Success: stats.Success, ExploredNodes: stats.ExploredNodes, Ran: true}
		if !stats.Success {
			ag.Path = nil
			ag.State = NoPath
			ag.DesiredMove = geom.Vec3{}
			return pr
		}
		ag.Path = path
		startIdx, _ := path.FindIndexOfNode(*agentNode)
		endIdx, _ := path.FindIndexOfNodeRev(*targetNode)
		ag.followPath(nd, startIdx, agentPt, endIdx, targetPt)
		return pr

	case FollowPath:
		ag.followPath(nd, result.Start, agentPt, result.End, targetPt)
		return PathingResult{}
	}

	return PathingResult{}
}

// followPath implements spec.md §4.5 step 2's FollowPath branch: compute
// the next funnel step, test target-reached and animation-link-reached,
// and otherwise steer toward the step.
func (ag *Agent) followPath(nd *island.NavData, startIdx navpath.PathIndex, startPt geom.Vec3, endIdx navpath.PathIndex, endPt geom.Vec3) {
	nextIdx, step := navpath.FindNextPointInStraightPath(nd, ag.Path, startIdx, startPt, endIdx, endPt)

	if ag.targetReached(nd, startIdx, startPt, endIdx, endPt, nextIdx, step) {
		ag.State = ReachedTarget
		ag.DesiredMove = geom.Vec3{}
		return
	}

	if step.Kind == navpath.StepAnimationLink {
		d := ag.animationLinkReachedDistance()
		if startPt.Dist(step.StartPoint) <= d {
			ag.CurrentAnimationLink = &ReachedAnimationLink{
				Link: step.Link, StartPoint: step.StartPoint, EndPoint: step.EndPoint,
				StartNode: step.StartNode, EndNode: step.EndNode,
			}
			ag.State = ReachedAnimationLink
			ag.DesiredMove = geom.Vec3{}
			return
		}
	}

	target := step.Point
	if step.Kind == navpath.StepAnimationLink {
		target = step.StartPoint
	}
	dir := target.XY().Sub(startPt.XY()).Normalized()
	ag.State = Moving
	ag.DesiredMove = geom.V3(dir.Scale(ag.MaxSpeed), 0)
}

// animationLinkReachedDistance resolves spec.md's "Deliberately
// unresolved" fallback: when AnimationLinkReachedDistance is unset, use
// TargetReachedCondition's configured distance (defaulting further to
// radius), per the observed-rule decision recorded in DESIGN.md.
func (ag *Agent) animationLinkReachedDistance() float32 {
	if ag.AnimationLinkReachedDistance != nil {
		return *ag.AnimationLinkReachedDistance
	}
	return ag.TargetReachedCondition.resolvedDistance(ag.Radius)
}

// targetReached implements spec.md §4.5 step 3's three predicate
// flavours, each evaluated against the straight-path result.
func (ag *Agent) targetReached(nd *island.NavData, startIdx navpath.PathIndex, startPt geom.Vec3, endIdx navpath.PathIndex, endPt geom.Vec3, nextIdx navpath.PathIndex, step navpath.StraightPathStep) bool {
	d := ag.TargetReachedCondition.resolvedDistance(ag.Radius)

	switch ag.TargetReachedCondition.Kind {
	case Distance:
		return startPt.Dist(endPt) < d

	case VisibleAtDistance:
		if step.Kind != navpath.StepWaypoint {
			return false
		}
		if nextIdx != endIdx {
			return false
		}
		return startPt.Dist(step.Point) < d

	case StraightPathDistance:
		if startPt.Dist(endPt) > d {
			return false
		}
		if nextIdx == endIdx {
			return true
		}
		curIdx, curPt, sum := nextIdx, step.Point, startPt.Dist(step.Point)
		for {
			if curIdx == endIdx {
				return true
			}
			if sum > d {
				return false
			}
			ni, s := navpath.FindNextPointInStraightPath(nd, ag.Path, curIdx, curPt, endIdx, endPt)
			if s.Kind == navpath.StepAnimationLink {
				return false
			}
			sum += curPt.Dist(s.Point)
			curIdx, curPt = ni, s.Point
		}

	default:
		return false
	}
}

// StartAnimationLink implements spec.md §4.5 step 4: succeeds only when a
// CurrentAnimationLink has been published by a prior Tick.
func (ag *Agent) StartAnimationLink() error {
	if ag.CurrentAnimationLink == nil {
		return &NotReachedAnimationLinkError{}
	}
	ag.UsingAnimationLink = true
	return nil
}

// EndAnimationLink implements spec.md §4.5 step 4: succeeds only when
// currently using one.
func (ag *Agent) EndAnimationLink() error {
	if !ag.UsingAnimationLink {
		return &NotUsingAnimationLinkError{}
	}
	ag.UsingAnimationLink = false
	ag.CurrentAnimationLink = nil
	return nil
}

// NotReachedAnimationLinkError is returned by StartAnimationLink when no
// animation link has been reached yet.
type NotReachedAnimationLinkError struct{}

func (e *NotReachedAnimationLinkError) Error() string {
	return "agent: no animation link has been reached"
}

// NotUsingAnimationLinkError is returned by EndAnimationLink when the
// agent isn't currently using one.
type NotUsingAnimationLinkError struct{}

func (e *NotUsingAnimationLinkError) Error() string {
	return "agent: not currently using an animation link"
}
