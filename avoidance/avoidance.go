package avoidance

import (
	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/island"
)

// AgentInput is the per-tick avoidance-relevant projection of one agent,
// per spec.md §4.6/§3. ID is an opaque caller-assigned key (archipelago
// uses the agent's index into its own per-tick id slice) echoed back in
// Apply's result map; avoidance itself
// has no notion of agent identity beyond it.
type AgentInput struct {
	ID                int
	Position          geom.Vec3
	Node              island.NodeRef
	Velocity          geom.Vec3
	Radius            float32
	PreferredVelocity geom.Vec3
	MaxSpeed          float32

	// Responsibility is how much of any avoidance correction this agent
	// should absorb, in [0, 1]; lower values push more of the correction
	// onto the other party. The archipelago orchestrator sets this low for
	// agents that have already reached their target and are effectively
	// idling, per spec.md §4.6's avoidance_responsibility.
	Responsibility float32
}

// CharacterInput is a non-pathing obstacle agent, per spec.md §3's
// Character entity: it steers no differently for being avoided, so every
// agent bears full responsibility for avoiding it.
type CharacterInput struct {
	Position geom.Vec3
	Velocity geom.Vec3
	Radius   float32
}

// Options configures the solver, per spec.md §4.6/§9.
type Options struct {
	// Neighbourhood is the radius (in world units) within which other
	// agents, characters and nav-mesh border walls are considered.
	Neighbourhood float32

	// TimeHorizon is the ORCA time horizon used against other agents and
	// characters: larger values make agents react to collisions further
	// in the future, producing earlier but gentler avoidance.
	TimeHorizon float32

	// ObstacleTimeHorizon is the (typically shorter) time horizon used
	// against static nav-mesh border walls.
	ObstacleTimeHorizon float32
}

// DefaultOptions returns reasonable defaults scaled to a 1-unit-radius
// agent, per spec.md §9's baseline scenario.
func DefaultOptions() Options {
	return Options{Neighbourhood: 5, TimeHorizon: 1, ObstacleTimeHorizon: 0.5}
}

// Apply computes one tick's avoidance-adjusted velocity for every agent in
// agents, per spec.md §4.6: gather nearby agents/characters via the
// KD-tree, reconstruct nearby nav-mesh border walls, build one ORCA
// half-plane per neighbour/wall, and solve the resulting linear program
// against each agent's preferred velocity. deltaTime <= 0 (the first tick)
// is treated as 1, matching the teacher's own crowd update's guard against
// a zero or negative frame time.
func Apply(nd *island.NavData, agents []AgentInput, characters []CharacterInput, opts Options, deltaTime float32) map[int]geom.Vec3 {
	if deltaTime <= 0 {
		deltaTime = 1
	}

	agentPts := make([]geom.Vec2, len(agents))
	for i, a := range agents {
		agentPts[i] = a.Position.XY()
	}
	agentTree := newKDTree(agentPts)

	charPts := make([]geom.Vec2, len(characters))
	for i, c := range characters {
		charPts[i] = c.Position.XY()
	}
	charTree := newKDTree(charPts)

	out := make(map[int]geom.Vec3, len(agents))

	for i, a := range agents {
		pos2 := a.Position.XY()
		vel2 := a.Velocity.XY()
		preferred := a.PreferredVelocity.XY()

		var lines []orcaLine

		for _, ob := range collectBorderObstacles(nd, a.Node, pos2, opts.Neighbourhood) {
			rel := nearestPointOnSegment(geom.Vec2{}, ob.A, ob.B)
			lines = append(lines, computeOrcaLine(rel, vel2, a.Radius, opts.ObstacleTimeHorizon, 1.0, vel2, deltaTime))
		}
		numObstacleLines := len(lines)

		for _, j := range agentTree.queryRadius(pos2, a.Radius+opts.Neighbourhood, nil) {
			if j == i {
				continue
			}
			other := agents[j]
			relPos := other.Position.XY().Sub(pos2)
			if relPos.Len() >= other.Radius+opts.Neighbourhood {
				continue
			}
			relVel := vel2.Sub(other.Velocity.XY())
			combined := a.Radius + other.Radius
			weight := responsibilityWeight(a.Responsibility, other.Responsibility)
			lines = append(lines, computeOrcaLine(relPos, relVel, combined, opts.TimeHorizon, weight, vel2, deltaTime))
		}

		for _, j := range charTree.queryRadius(pos2, a.Radius+opts.Neighbourhood, nil) {
			c := characters[j]
			relPos := c.Position.XY().Sub(pos2)
			if relPos.Len() >= c.Radius+opts.Neighbourhood {
				continue
			}
			relVel := vel2.Sub(c.Velocity.XY())
			combined := a.Radius + c.Radius
			lines = append(lines, computeOrcaLine(relPos, relVel, combined, opts.TimeHorizon, 1.0, vel2, deltaTime))
		}

		solved := solve(lines, numObstacleLines, a.MaxSpeed, preferred)
		out[a.ID] = geom.V3(solved, a.PreferredVelocity.Z)
	}

	return out
}

// responsibilityWeight is how much of an agent-agent avoidance correction
// self takes on: self's share of the combined responsibility, so a
// self with full responsibility against an other with none absorbs the
// whole correction, and two equally-responsible agents split it evenly
// (the classic ORCA 50/50 split).
func responsibilityWeight(self, other float32) float32 {
	sum := self + other
	if sum <= 1e-6 {
		return 0.5
	}
	return self / sum
}

// nearestPointOnSegment projects p onto segment (a, b), clamped to it.
func nearestPointOnSegment(p, a, b geom.Vec2) geom.Vec2 {
	ab := b.Sub(a)
	denom := ab.LenSqr()
	if denom < 1e-12 {
		return a
	}
	t := p.Sub(a).Dot(ab) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}
