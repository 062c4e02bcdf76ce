package archipelago

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

// AgentOptions applies to every agent in an archipelago, per spec.md §6.
type AgentOptions struct {
	// Neighbourhood is the avoidance search radius beyond each agent's
	// own radius: how far away another agent or character is considered
	// at all.
	Neighbourhood float32
	// AvoidanceTimeHorizon is the ORCA time horizon used against
	// neighbouring agents and characters.
	AvoidanceTimeHorizon float32
	// ObstacleAvoidanceTimeHorizon is the ORCA time horizon used against
	// border obstacles.
	ObstacleAvoidanceTimeHorizon float32
	// ReachedDestinationAvoidanceResponsibility in [0,1] controls how
	// much an agent that has reached its target yields to others; 1.0
	// means it still avoids as aggressively as a moving agent, 0.0 means
	// it stands its ground like a character.
	ReachedDestinationAvoidanceResponsibility float32
	// PointSampleDistance is the tolerance used when projecting agent,
	// target and character points onto the nav mesh each tick.
	PointSampleDistance navmesh.PointSampleDistance3D
}

// DefaultAgentOptions derives sensible defaults from a canonical agent
// radius, per spec.md §6's "a convenience constructor derives defaults
// from a canonical agent radius".
func DefaultAgentOptions(agentRadius float32) AgentOptions {
	return AgentOptions{
		Neighbourhood:                agentRadius * 5,
		AvoidanceTimeHorizon:         1,
		ObstacleAvoidanceTimeHorizon: 0.5,
		ReachedDestinationAvoidanceResponsibility: 1,
		PointSampleDistance:                       navmesh.PointSampleDistance2D(agentRadius / 2),
	}
}

// defaultEdgeLinkDistance is the tolerance NavData.Update uses to decide whether
// two islands' boundaries are close enough to stitch. The original
// engine hardcodes this with a "make configurable" TODO; this port
// exposes it as a field (Archipelago.EdgeLinkDistance) defaulting to the
// same value rather than carrying the TODO forward unresolved.
const defaultEdgeLinkDistance float32 = 0.01

// AnimationLink declares a user-authored off-mesh link between two edges
// in world space, per spec.md §6. Kind is an opaque tag matched against
// an agent's PermittedAnimationLinkKinds.
type AnimationLink struct {
	StartEdge     [2]geom.Vec3
	EndEdge       [2]geom.Vec3
	Cost          float32
	Kind          int
	Bidirectional bool
}
