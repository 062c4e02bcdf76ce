// Package archipelago is the top-level orchestrator of spec.md §4.7 and
// §6: it owns the island set (via island.NavData), the agent and
// character collections, and the node-type registry, and drives the
// fixed per-tick pipeline (nav-data update, sampling, repath/follow,
// avoidance, telemetry collection) that every other package only
// implements a slice of.
//
// Grounded on crowd/crowd.go's Crowd.Update (the Detour crowd manager's
// per-tick nav update -> sample -> repath -> corners -> avoidance ->
// integrate pipeline), re-scoped from Detour's static tile mesh to this
// engine's dirty-flag/rebuild-graph model.
package archipelago

import (
	"github.com/google/uuid"

	"github.com/arl/landmass/island"
)

// AgentId and CharacterId are opaque per-archipelago identifiers,
// mirroring island.IslandId's UUID-backed, zero-value-safe handle design
// (spec.md §3).
type AgentId uuid.UUID
type CharacterId uuid.UUID

func NewAgentId() AgentId         { return AgentId(uuid.New()) }
func NewCharacterId() CharacterId { return CharacterId(uuid.New()) }

// AnimationLinkId names the off-mesh link id returned by AddAnimationLink;
// it is the same handle type island.OffMeshLinkId uses internally, aliased
// here for the spec's own naming (spec.md §6).
type AnimationLinkId = island.OffMeshLinkId
