package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

func testMesh(t *testing.T) *navmesh.Mesh {
	t.Helper()
	raw := &navmesh.RawMesh{
		Vertices: []geom.Vec3{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			{X: 10, Y: 0}, {X: 20, Y: 0}, {X: 20, Y: 10}, {X: 10, Y: 10},
		},
		Polygons:  [][]int{{0, 1, 2, 3}, {4, 5, 6, 7}},
		TypeIndex: []int{0, 1},
	}
	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	return mesh
}

func TestMarshalUnmarshalRoundTripsMesh(t *testing.T) {
	mesh := testMesh(t)

	buf, err := Marshal(mesh)
	require.NoError(t, err)
	require.NotEmpty(t, buf)

	got, err := Unmarshal(buf)
	require.NoError(t, err)

	require.Equal(t, mesh.Vertices, got.Vertices)
	require.Equal(t, mesh.TypeIndex, got.TypeIndex)
	require.Equal(t, mesh.NumRegions, got.NumRegions)
	require.Equal(t, mesh.Bounds, got.Bounds)
	require.Len(t, got.Polygons, len(mesh.Polygons))
	for i := range mesh.Polygons {
		require.Equal(t, mesh.Polygons[i].Vertices, got.Polygons[i].Vertices)
		require.Equal(t, mesh.Polygons[i].Connectivity, got.Polygons[i].Connectivity)
		require.Equal(t, mesh.Polygons[i].Center, got.Polygons[i].Center)
		require.Equal(t, mesh.Polygons[i].Region, got.Polygons[i].Region)
	}
}

func TestUnmarshalRejectsBadMagic(t *testing.T) {
	_, err := Unmarshal([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.Error(t, err)
}
