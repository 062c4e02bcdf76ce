package archipelago

import (
	"sort"

	assert "github.com/arl/assertgo"

	"github.com/arl/landmass/agent"
	"github.com/arl/landmass/avoidance"
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navpath"
	"github.com/arl/landmass/pathfind"
)

// Character is a navmesh obstacle that does not pathfind: agents avoid it
// but it never moves on its own, per spec.md §3.
type Character struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Radius   float32
}

// PathingResult is the per-tick telemetry spec.md §4.7 step 7 collects,
// one entry per agent whose pathfinder actually ran this tick.
type PathingResult struct {
	AgentId       AgentId
	Success       bool
	ExploredNodes int
}

// Archipelago is the top-level engine handle: the island set, the agent
// and character collections, and the node-type registry, driven one tick
// at a time by Update (spec.md §4.7).
type Archipelago struct {
	NavData   *island.NavData
	NodeTypes *island.NodeTypes

	// EdgeLinkDistance is the tolerance NavData.Update uses to decide
	// whether two islands' boundaries should stitch.
	EdgeLinkDistance float32

	options AgentOptions

	agents     map[AgentId]*agent.Agent
	characters map[CharacterId]*Character
}

// New creates an empty archipelago configured by options, per spec.md §6.
func New(options AgentOptions) *Archipelago {
	return &Archipelago{
		NavData:          island.NewNavData(),
		NodeTypes:        island.NewNodeTypes(),
		EdgeLinkDistance: defaultEdgeLinkDistance,
		options:          options,
		agents:           make(map[AgentId]*agent.Agent),
		characters:       make(map[CharacterId]*Character),
	}
}

// Options returns the agent options this archipelago was configured
// with.
func (a *Archipelago) Options() AgentOptions { return a.options }

// AddIsland creates a new, empty island and returns its id.
func (a *Archipelago) AddIsland() island.IslandId { return a.NavData.AddIsland() }

// GetIslandMut returns the live island for id, or nil if unknown, so
// callers can call SetNavMesh on it directly (spec.md §6's
// "get_island_mut(id).set_nav_mesh(...)").
func (a *Archipelago) GetIslandMut(id island.IslandId) *island.Island { return a.NavData.Island(id) }

// RemoveIsland schedules id for removal on the next Update.
func (a *Archipelago) RemoveIsland(id island.IslandId) { a.NavData.RemoveIsland(id) }

// AddAgent registers ag and returns its id.
func (a *Archipelago) AddAgent(ag *agent.Agent) AgentId {
	id := NewAgentId()
	a.agents[id] = ag
	return id
}

// GetAgent returns the registered agent, or nil if id is unknown.
func (a *Archipelago) GetAgent(id AgentId) *agent.Agent { return a.agents[id] }

// RemoveAgent drops an agent from the archipelago. Removing an id that
// isn't present is a programmer error, not a recoverable runtime
// condition, so it's asserted rather than silently ignored.
func (a *Archipelago) RemoveAgent(id AgentId) {
	_, ok := a.agents[id]
	assert.True(ok, "archipelago: RemoveAgent called with unknown agent %v", id)
	delete(a.agents, id)
}

// Agents returns every registered agent, keyed by id, for callers that
// need to walk the whole set (debug drawing).
func (a *Archipelago) Agents() map[AgentId]*agent.Agent { return a.agents }

// AddCharacter registers c and returns its id.
func (a *Archipelago) AddCharacter(c *Character) CharacterId {
	id := NewCharacterId()
	a.characters[id] = c
	return id
}

// GetCharacter returns the registered character, or nil if id is unknown.
func (a *Archipelago) GetCharacter(id CharacterId) *Character { return a.characters[id] }

// RemoveCharacter drops a character from the archipelago. Like
// RemoveAgent, an unknown id is a programmer error.
func (a *Archipelago) RemoveCharacter(id CharacterId) {
	_, ok := a.characters[id]
	assert.True(ok, "archipelago: RemoveCharacter called with unknown character %v", id)
	delete(a.characters, id)
}

// AddNodeType registers a new cost multiplier, rejecting cost <= 0.
func (a *Archipelago) AddNodeType(cost float32) (island.NodeType, error) {
	return a.NodeTypes.Add(cost)
}

// SetNodeTypeCost updates an existing node type's cost multiplier.
func (a *Archipelago) SetNodeTypeCost(id island.NodeType, cost float32) error {
	return a.NodeTypes.SetCost(id, cost)
}

// GetNodeTypeCost reports a node type's current cost multiplier.
func (a *Archipelago) GetNodeTypeCost(id island.NodeType) (float32, bool) {
	return a.NodeTypes.Cost(id)
}

// RemoveNodeType drops a node type, refusing while any live island still
// maps one of its polygon type indices to it.
func (a *Archipelago) RemoveNodeType(id island.NodeType) error {
	return a.NodeTypes.Remove(id, a.NavData.NodeTypeReferenced(id))
}

// AddAnimationLink resolves link's world-space edges onto the nav mesh
// and registers the off-mesh link(s), per spec.md §6.
func (a *Archipelago) AddAnimationLink(link AnimationLink) (AnimationLinkId, error) {
	startMid := link.StartEdge[0].Lerp(link.StartEdge[1], 0.5)
	endMid := link.EndEdge[0].Lerp(link.EndEdge[1], 0.5)

	_, startNode, ok := a.NavData.SamplePoint(startMid, a.options.PointSampleDistance)
	if !ok {
		return AnimationLinkId{}, &SamplePointError{Kind: OutOfRange}
	}
	_, endNode, ok := a.NavData.SamplePoint(endMid, a.options.PointSampleDistance)
	if !ok {
		return AnimationLinkId{}, &SamplePointError{Kind: OutOfRange}
	}

	id, _ := a.NavData.AddAnimationLink(startNode, endNode, link.StartEdge, link.EndEdge, link.Cost, link.Kind, link.Bidirectional)
	return id, nil
}

// SamplePoint projects point onto the nearest island, per spec.md §4.7.
func (a *Archipelago) SamplePoint(point geom.Vec3) (geom.Vec3, island.NodeRef, error) {
	hit, node, ok := a.NavData.SamplePoint(point, a.options.PointSampleDistance)
	if !ok {
		return geom.Vec3{}, island.NodeRef{}, &SamplePointError{Kind: OutOfRange}
	}
	return hit, node, nil
}

// FindPath performs a one-shot A* between start and end and funnels the
// full corridor into a waypoint list, per spec.md §4.7's final
// paragraph. It is for queries, not movement: the live per-agent path is
// instead tracked incrementally by Update via package agent.
func (a *Archipelago) FindPath(start, end geom.Vec3, overrides map[island.NodeType]float32) ([]geom.Vec3, error) {
	startPt, startNode, err := a.SamplePoint(start)
	if err != nil {
		return nil, &FindPathError{Kind: EndpointNotOnMesh}
	}
	endPt, endNode, err := a.SamplePoint(end)
	if err != nil {
		return nil, &FindPathError{Kind: EndpointNotOnMesh}
	}

	path, stats := pathfind.FindPath(a.NavData, startNode, endNode, startPt, endPt, a.NodeTypes, overrides)
	if !stats.Success {
		return nil, &FindPathError{Kind: NoPath}
	}

	startIdx, _ := path.FindIndexOfNode(startNode)
	endIdx, _ := path.FindIndexOfNodeRev(endNode)

	var waypoints []geom.Vec3
	curIdx, curPt := startIdx, startPt
	for step := 0; step < 4096; step++ {
		nextIdx, s := navpath.FindNextPointInStraightPath(a.NavData, path, curIdx, curPt, endIdx, endPt)
		if s.Kind == navpath.StepAnimationLink {
			waypoints = append(waypoints, s.StartPoint, s.EndPoint)
			curIdx, curPt = nextIdx, s.EndPoint
			continue
		}
		waypoints = append(waypoints, s.Point)
		curIdx, curPt = nextIdx, s.Point
		if curIdx == endIdx {
			break
		}
	}
	return waypoints, nil
}

// Update runs spec.md §4.7's fixed seven-step per-tick pipeline.
func (a *Archipelago) Update(deltaTime float32) []PathingResult {
	droppedLinks, changedIslands := a.NavData.Update(a.EdgeLinkDistance)

	invalidatedLinks := make(map[island.OffMeshLinkId]bool, len(droppedLinks))
	for _, id := range droppedLinks {
		invalidatedLinks[id] = true
	}
	invalidatedIslands := make(map[island.IslandId]bool, len(changedIslands))
	for _, id := range changedIslands {
		invalidatedIslands[id] = true
	}

	ids := make([]AgentId, 0, len(a.agents))
	for id := range a.agents {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return agentLess(ids[i], ids[j]) })

	type sample struct {
		point geom.Vec3
		node  island.NodeRef
		ok    bool
	}

	agentSample := make(map[AgentId]sample, len(ids))
	targetSample := make(map[AgentId]sample, len(ids))

	for _, id := range ids {
		ag := a.agents[id]
		p, n, ok := a.NavData.SamplePoint(ag.Position, a.options.PointSampleDistance)
		agentSample[id] = sample{point: p, node: n, ok: ok}

		if ag.Target.Kind != agent.TargetNone {
			tp, tn, ok := a.NavData.SamplePoint(ag.Target.Point, a.options.PointSampleDistance)
			targetSample[id] = sample{point: tp, node: tn, ok: ok}
		}
	}

	characterSample := make(map[CharacterId]sample, len(a.characters))
	for id, c := range a.characters {
		p, n, ok := a.NavData.SamplePoint(c.Position, a.options.PointSampleDistance)
		characterSample[id] = sample{point: p, node: n, ok: ok}
	}

	var results []PathingResult
	for _, id := range ids {
		ag := a.agents[id]
		as := agentSample[id]
		ts := targetSample[id]

		var agentNode, targetNode *island.NodeRef
		if as.ok {
			n := as.node
			agentNode = &n
		}
		if ts.ok {
			n := ts.node
			targetNode = &n
		}

		pr := agent.Tick(a.NavData, ag, agentNode, targetNode, as.point, ts.point, invalidatedLinks, invalidatedIslands, a.NodeTypes)
		if pr.Ran {
			results = append(results, PathingResult{AgentId: id, Success: pr.Success, ExploredNodes: pr.ExploredNodes})
		}
	}

	var agentInputs []avoidance.AgentInput
	idByIndex := make([]AgentId, 0, len(ids))
	for _, id := range ids {
		as := agentSample[id]
		if !as.ok {
			continue
		}
		ag := a.agents[id]

		responsibility := float32(1.0)
		if ag.State == agent.ReachedTarget {
			responsibility = a.options.ReachedDestinationAvoidanceResponsibility
		}

		agentInputs = append(agentInputs, avoidance.AgentInput{
			ID:                len(idByIndex),
			Position:          as.point,
			Node:              as.node,
			Velocity:          ag.Velocity,
			Radius:            ag.Radius,
			PreferredVelocity: ag.DesiredMove,
			MaxSpeed:          ag.MaxSpeed,
			Responsibility:    responsibility,
		})
		idByIndex = append(idByIndex, id)
	}

	var characterInputs []avoidance.CharacterInput
	for id, c := range a.characters {
		cs := characterSample[id]
		if !cs.ok {
			// no projection onto any island: per spec.md §4.7 step 4 the
			// character does not obstruct this tick.
			continue
		}
		characterInputs = append(characterInputs, avoidance.CharacterInput{
			Position: cs.point,
			Velocity: c.Velocity,
			Radius:   c.Radius,
		})
	}

	avoidanceOptions := avoidance.Options{
		Neighbourhood:       a.options.Neighbourhood,
		TimeHorizon:         a.options.AvoidanceTimeHorizon,
		ObstacleTimeHorizon: a.options.ObstacleAvoidanceTimeHorizon,
	}

	moves := avoidance.Apply(a.NavData, agentInputs, characterInputs, avoidanceOptions, deltaTime)
	for idx, id := range idByIndex {
		a.agents[id].DesiredMove = moves[idx]
	}

	return results
}

func agentLess(a, b AgentId) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
