package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arl/landmass/navmesh"
)

func writeTestOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mesh.obj")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRawMeshDedupesSharedVertices(t *testing.T) {
	// Two adjacent quads sharing an edge, each face listing its own
	// vertex coordinates (gobj stores by value, not by index), so the
	// shared edge's two vertices must collapse to the same index.
	obj := `
v 0 0 0
v 10 0 0
v 10 10 0
v 0 10 0
v 10 0 0
v 20 0 0
v 20 10 0
v 10 10 0
f 1 2 3 4
f 5 6 7 8
`
	path := writeTestOBJ(t, obj)

	raw, err := loadRawMesh(path)
	require.NoError(t, err)
	require.Len(t, raw.Vertices, 6)
	require.Len(t, raw.Polygons, 2)

	mesh, err := navmesh.Validate(raw)
	require.NoError(t, err)
	require.True(t, mesh.Polygons[0].Connectivity[1].Connected || mesh.Polygons[1].Connectivity[3].Connected)
}
