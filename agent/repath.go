package agent

import (
	"github.com/arl/landmass/island"
	"github.com/arl/landmass/navpath"
)

// RepathKind enumerates the outcomes of DoesAgentNeedRepath, per
// spec.md §4.5 step 1.
type RepathKind int

const (
	DoNothing RepathKind = iota
	FollowPath
	ClearPathNoTarget
	ClearPathBadAgent
	ClearPathBadTarget
	NeedsRepath
)

// RepathResult is the outcome of DoesAgentNeedRepath; Start/End are only
// meaningful when Kind == FollowPath.
type RepathResult struct {
	Kind       RepathKind
	Start, End navpath.PathIndex
}

// DoesAgentNeedRepath implements spec.md §4.5 step 1's decision table, in
// the exact priority order given there. agentNode/targetNode are nil when
// this tick's sample_point call failed for that endpoint.
func DoesAgentNeedRepath(ag *Agent, agentNode, targetNode *island.NodeRef, invalidatedLinks map[island.OffMeshLinkId]bool, invalidatedIslands map[island.IslandId]bool) RepathResult {
	if ag.Target.Kind == TargetNone {
		if ag.Path == nil {
			return RepathResult{Kind: DoNothing}
		}
		return RepathResult{Kind: ClearPathNoTarget}
	}

	if agentNode == nil {
		return RepathResult{Kind: ClearPathBadAgent}
	}
	if targetNode == nil {
		return RepathResult{Kind: ClearPathBadTarget}
	}

	if ag.Path == nil {
		return RepathResult{Kind: NeedsRepath}
	}
	if !ag.Path.IsValid(invalidatedLinks, invalidatedIslands) {
		return RepathResult{Kind: NeedsRepath}
	}

	startIdx, ok := ag.Path.FindIndexOfNode(*agentNode)
	if !ok {
		return RepathResult{Kind: NeedsRepath}
	}
	endIdx, ok := ag.Path.FindIndexOfNodeRev(*targetNode)
	if !ok {
		return RepathResult{Kind: NeedsRepath}
	}

	if pathIndexLess(endIdx, startIdx) {
		return RepathResult{Kind: NeedsRepath}
	}

	return RepathResult{Kind: FollowPath, Start: startIdx, End: endIdx}
}

// pathIndexLess orders PathIndex lexicographically by (SegmentIndex,
// PortalIndex), used to detect an agent that has overshot its target's
// corridor position.
func pathIndexLess(a, b navpath.PathIndex) bool {
	if a.SegmentIndex != b.SegmentIndex {
		return a.SegmentIndex < b.SegmentIndex
	}
	return a.PortalIndex < b.PortalIndex
}
