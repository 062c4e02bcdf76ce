package geom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEdgeIntersectionOverlappingColinearSegments(t *testing.T) {
	a0, a1 := Vec2{X: 0, Y: 0}, Vec2{X: 0, Y: 10}
	b0, b1 := Vec2{X: 0, Y: 4}, Vec2{X: 0, Y: 14}

	p0, p1, ok := EdgeIntersection(a0, a1, b0, b1, 0.1)
	require.True(t, ok)
	require.InDelta(t, 4, p0.Y, 1e-5)
	require.InDelta(t, 10, p1.Y, 1e-5)
}

func TestEdgeIntersectionRejectsNonOverlapping(t *testing.T) {
	a0, a1 := Vec2{X: 0, Y: 0}, Vec2{X: 0, Y: 1}
	b0, b1 := Vec2{X: 0, Y: 2}, Vec2{X: 0, Y: 3}

	_, _, ok := EdgeIntersection(a0, a1, b0, b1, 0.1)
	require.False(t, ok)
}

func TestEdgeIntersectionRejectsFarApartLines(t *testing.T) {
	a0, a1 := Vec2{X: 0, Y: 0}, Vec2{X: 0, Y: 10}
	b0, b1 := Vec2{X: 5, Y: 0}, Vec2{X: 5, Y: 10}

	_, _, ok := EdgeIntersection(a0, a1, b0, b1, 0.1)
	require.False(t, ok)
}

func TestBBHQueryFindsOverlappingItems(t *testing.T) {
	items := []Item{
		{Bounds: Bounds{Min: Vec2{0, 0}, Max: Vec2{1, 1}}, Index: 0},
		{Bounds: Bounds{Min: Vec2{5, 5}, Max: Vec2{6, 6}}, Index: 1},
		{Bounds: Bounds{Min: Vec2{10, 10}, Max: Vec2{11, 11}}, Index: 2},
	}
	bbh := NewBBH(items)

	hits := bbh.Query(Bounds{Min: Vec2{0.5, 0.5}, Max: Vec2{5.5, 5.5}}, nil)
	require.ElementsMatch(t, []int{0, 1}, hits)
}

func TestProjectOnTriangleInsideVsOutside(t *testing.T) {
	tri := Triangle{
		A: Vec2{0, 0}, B: Vec2{2, 0}, C: Vec2{0, 2},
		AZ: 0, BZ: 0, CZ: 2,
	}

	pt, height, dist := ProjectOnTriangle(Vec2{0.5, 0.5}, tri)
	require.Equal(t, Vec2{0.5, 0.5}, pt)
	require.Equal(t, float32(0), dist)
	require.InDelta(t, 0.5, height, 1e-4)

	_, _, dist = ProjectOnTriangle(Vec2{5, 5}, tri)
	require.Greater(t, dist, float32(0))
}
