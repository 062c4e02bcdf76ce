package cmd

import (
	"github.com/arl/gobj"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

// loadRawMesh reads path as an OBJ file and converts it to a
// navmesh.RawMesh. gobj.Polygon stores each face's vertices by value
// rather than by index into a shared vertex array, so polygon adjacency
// (and therefore navmesh.Validate's connectivity derivation) only exists
// if coincident vertices across faces are recognized as the same vertex;
// this dedupes by exact coordinate to recover the shared-index form
// navmesh.RawMesh needs.
func loadRawMesh(path string) (*navmesh.RawMesh, error) {
	obj, err := gobj.Load(path)
	if err != nil {
		return nil, err
	}

	index := make(map[gobj.Vertex]int)
	var verts []geom.Vec3

	vertexIndex := func(v gobj.Vertex) int {
		if i, ok := index[v]; ok {
			return i
		}
		i := len(verts)
		index[v] = i
		verts = append(verts, geom.Vec3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())})
		return i
	}

	polys := make([][]int, len(obj.Polys()))
	typeIndex := make([]int, len(obj.Polys()))
	for pi, poly := range obj.Polys() {
		idx := make([]int, len(poly))
		for vi, v := range poly {
			idx[vi] = vertexIndex(v)
		}
		polys[pi] = idx
	}

	return &navmesh.RawMesh{Vertices: verts, Polygons: polys, TypeIndex: typeIndex}, nil
}
