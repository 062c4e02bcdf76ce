package navmesh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
)

func quad(x0, y0, x1, y1 float32) []geom.Vec3 {
	return []geom.Vec3{
		{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1},
	}
}

func TestValidateTwoTrianglesShareEdgeAndRegion(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		},
		Polygons:  [][]int{{0, 1, 2}, {0, 2, 3}},
		TypeIndex: []int{0, 0},
	}
	mesh, err := Validate(raw)
	require.NoError(t, err)
	require.Equal(t, 1, mesh.NumRegions)
	require.True(t, mesh.Polygons[0].Connectivity[2].Connected)
	require.Equal(t, 1, mesh.Polygons[0].Connectivity[2].NeighbourPolygon)
}

func TestValidateRejectsTooFewVertices(t *testing.T) {
	raw := &RawMesh{
		Vertices:  []geom.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Polygons:  [][]int{{0, 1}},
		TypeIndex: []int{0},
	}
	_, err := Validate(raw)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, NotEnoughVerticesInPolygon, verr.Kind)
}

func TestValidateRejectsInvalidVertexIndex(t *testing.T) {
	raw := &RawMesh{
		Vertices:  []geom.Vec3{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		Polygons:  [][]int{{0, 1, 7}},
		TypeIndex: []int{0},
	}
	_, err := Validate(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, InvalidVertexIndexInPolygon, verr.Kind)
}

func TestValidateRejectsConcavePolygon(t *testing.T) {
	raw := &RawMesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 0, Y: 2},
		},
		Polygons:  [][]int{{0, 1, 2, 3, 4}},
		TypeIndex: []int{0},
	}
	_, err := Validate(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, ConcavePolygon, verr.Kind)
}

func TestValidateRejectsDoublyConnectedEdge(t *testing.T) {
	// Three triangles all incident to the edge (v0,v1): the third owner
	// of that edge must be rejected.
	raw := &RawMesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0.5, Y: 1}, {X: 0.5, Y: -1}, {X: 0.5, Y: -2},
		},
		Polygons: [][]int{
			{0, 1, 2},
			{1, 0, 3},
			{1, 0, 4},
		},
		TypeIndex: []int{0, 0, 0},
	}
	_, err := Validate(raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, DoublyConnectedEdge, verr.Kind)
}

func TestMeshSamplePointProjectsOntoNearestPolygon(t *testing.T) {
	raw := &RawMesh{
		Vertices:  quad(0, 0, 1, 1),
		Polygons:  [][]int{{0, 1, 2, 3}},
		TypeIndex: []int{0},
	}
	mesh, err := Validate(raw)
	require.NoError(t, err)

	p, poly, ok := mesh.SamplePoint(geom.Vec3{X: 0.5, Y: 0.5, Z: 0.2}, PointSampleDistance2D(0.5))
	require.True(t, ok)
	require.Equal(t, 0, poly)
	require.InDelta(t, 0.5, p.X, 1e-5)
	require.InDelta(t, 0.5, p.Y, 1e-5)
}
