package avoidance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
)

func TestSolveReturnsPreferredWhenUnconstrained(t *testing.T) {
	v := solve(nil, 0, 2, geom.Vec2{X: 1, Y: 0})
	require.InDelta(t, 1, v.X, 1e-5)
	require.InDelta(t, 0, v.Y, 1e-5)
}

func TestSolveClampsToMaxSpeed(t *testing.T) {
	v := solve(nil, 0, 1, geom.Vec2{X: 3, Y: 4})
	require.InDelta(t, 1, v.Len(), 1e-4)
}

func TestSolveRespectsSingleHalfPlane(t *testing.T) {
	// Forbid any velocity with X > 0: feasible region is X <= 0.
	line := orcaLine{Point: geom.Vec2{}, Direction: geom.Vec2{X: 0, Y: 1}}
	v := solve([]orcaLine{line}, 0, 2, geom.Vec2{X: 1, Y: 0})
	require.LessOrEqual(t, v.X, float32(1e-4))
}

func TestLinearProgram3FallsBackOnInfeasibleIntersection(t *testing.T) {
	// Two contradictory half-planes (X <= -1 and X >= 1) have no common
	// solution; the two-pass fallback must still return some bounded
	// velocity rather than panic.
	a := orcaLine{Point: geom.Vec2{X: -1}, Direction: geom.Vec2{X: 0, Y: 1}}
	b := orcaLine{Point: geom.Vec2{X: 1}, Direction: geom.Vec2{X: 0, Y: -1}}
	require.NotPanics(t, func() {
		solve([]orcaLine{a, b}, 0, 2, geom.Vec2{X: 0, Y: 1})
	})
}

func TestKDTreeQueryRadiusFindsNearbyPoints(t *testing.T) {
	points := []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 10, Y: 10}, {X: 0.5, Y: 0.5}}
	tree := newKDTree(points)

	found := tree.queryRadius(geom.Vec2{X: 0, Y: 0}, 2, nil)
	require.ElementsMatch(t, []int{0, 1, 3}, found)
}

func TestKDTreeEmpty(t *testing.T) {
	tree := newKDTree(nil)
	require.Empty(t, tree.queryRadius(geom.Vec2{}, 5, nil))
}

func TestNearestPointOnSegmentClamps(t *testing.T) {
	p := nearestPointOnSegment(geom.Vec2{X: 5, Y: 1}, geom.Vec2{X: 0, Y: 0}, geom.Vec2{X: 1, Y: 0})
	require.Equal(t, geom.Vec2{X: 1, Y: 0}, p)
}

func TestResponsibilityWeightSplitsEvenlyWhenEqual(t *testing.T) {
	require.InDelta(t, 0.5, responsibilityWeight(1, 1), 1e-6)
	require.InDelta(t, 1, responsibilityWeight(1, 0), 1e-6)
	require.InDelta(t, 0.5, responsibilityWeight(0, 0), 1e-6)
}
