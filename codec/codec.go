// Package codec serializes a validated navmesh.Mesh to and from a small
// binary format, mirroring the byte-aligned write/read pairing
// detour/navmeshcreate.go uses to pack a dtNavMesh tile: a fixed header
// followed by aligned slices of fixed-size records.
//
// Grounded on detour/navmeshcreate.go's buildMeshData (aligned.NewWriter,
// WriteVal for the header, WriteSlice for the vertex/poly arrays), with
// the polygon loop written out explicitly here instead of via WriteSlice
// since navmesh.Polygon holds variable-length slices that have no fixed
// on-disk record size.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arl/aligned"

	"github.com/arl/landmass/geom"
	"github.com/arl/landmass/navmesh"
)

const (
	alignment = 4
	magic     = uint32(0x444d4c4e) // "NLMD", NavData LandMass
	version   = uint32(1)
)

type header struct {
	Magic      uint32
	Version    uint32
	NumVerts   uint32
	NumPolys   uint32
	NumRegions uint32
	BoundsMin  [2]float32
	BoundsMax  [2]float32
	BoundsMinZ float32
	BoundsMaxZ float32
	HasHeight  uint32
}

// WriteMesh writes m's binary form to w.
func WriteMesh(w io.Writer, m *navmesh.Mesh) error {
	hasHeight := uint32(0)
	if m.Height != nil {
		hasHeight = 1
	}
	hdr := header{
		Magic:      magic,
		Version:    version,
		NumVerts:   uint32(len(m.Vertices)),
		NumPolys:   uint32(len(m.Polygons)),
		NumRegions: uint32(m.NumRegions),
		BoundsMin:  [2]float32{m.Bounds.Min.X, m.Bounds.Min.Y},
		BoundsMax:  [2]float32{m.Bounds.Max.X, m.Bounds.Max.Y},
		BoundsMinZ: m.Bounds.MinZ,
		BoundsMaxZ: m.Bounds.MaxZ,
		HasHeight:  hasHeight,
	}

	aw := aligned.NewWriter(w, alignment, binary.LittleEndian)
	if err := aw.WriteVal(hdr); err != nil {
		return fmt.Errorf("codec: write header: %w", err)
	}

	verts := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		verts[i] = [3]float32{v.X, v.Y, v.Z}
	}
	if err := aw.WriteSlice(verts); err != nil {
		return fmt.Errorf("codec: write vertices: %w", err)
	}

	typeIndex := make([]int32, len(m.Polygons))
	for i, ti := range m.TypeIndex {
		typeIndex[i] = int32(ti)
	}
	if err := aw.WriteSlice(typeIndex); err != nil {
		return fmt.Errorf("codec: write type indices: %w", err)
	}

	for pi, poly := range m.Polygons {
		if err := writePolygon(aw, poly); err != nil {
			return fmt.Errorf("codec: write polygon %d: %w", pi, err)
		}
	}

	if m.Height != nil {
		if err := writeHeightMesh(aw, m.Height); err != nil {
			return fmt.Errorf("codec: write height mesh: %w", err)
		}
	}

	return nil
}

func writePolygon(aw *aligned.Writer, poly navmesh.Polygon) error {
	if err := aw.WriteVal(int32(len(poly.Vertices))); err != nil {
		return err
	}
	idx32 := make([]int32, len(poly.Vertices))
	for i, v := range poly.Vertices {
		idx32[i] = int32(v)
	}
	if err := aw.WriteSlice(idx32); err != nil {
		return err
	}
	for _, c := range poly.Connectivity {
		connected := int32(0)
		if c.Connected {
			connected = 1
		}
		rec := struct {
			Connected int32
			Neighbour int32
			D0, D1    float32
		}{connected, int32(c.NeighbourPolygon), c.TravelDistances[0], c.TravelDistances[1]}
		if err := aw.WriteVal(rec); err != nil {
			return err
		}
	}
	center := [3]float32{poly.Center.X, poly.Center.Y, poly.Center.Z}
	if err := aw.WriteVal(center); err != nil {
		return err
	}
	bounds := [6]float32{poly.Bounds.Min.X, poly.Bounds.Min.Y, poly.Bounds.Max.X, poly.Bounds.Max.Y, poly.Bounds.MinZ, poly.Bounds.MaxZ}
	if err := aw.WriteVal(bounds); err != nil {
		return err
	}
	return aw.WriteVal(int32(poly.Region))
}

func writeHeightMesh(aw *aligned.Writer, h *navmesh.HeightMesh) error {
	if err := aw.WriteVal(int32(len(h.Triangles))); err != nil {
		return err
	}
	for _, fan := range h.Triangles {
		if err := aw.WriteVal(int32(len(fan))); err != nil {
			return err
		}
		for _, tri := range fan {
			if err := writeTriangle(aw, tri); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeTriangle(aw *aligned.Writer, tri geom.Triangle) error {
	rec := [9]float32{tri.A.X, tri.A.Y, tri.AZ, tri.B.X, tri.B.Y, tri.BZ, tri.C.X, tri.C.Y, tri.CZ}
	return aw.WriteVal(rec)
}

// ReadMesh decodes a binary mesh written by WriteMesh. Because the stream
// carries an already-validated mesh's derived fields (connectivity,
// centers, bounds, regions) directly rather than a RawMesh, ReadMesh
// reconstructs a *navmesh.Mesh without re-running navmesh.Validate.
func ReadMesh(r io.Reader) (*navmesh.Mesh, error) {
	ar := aligned.NewReader(r, alignment, binary.LittleEndian)

	var hdr header
	if err := ar.ReadVal(&hdr); err != nil {
		return nil, fmt.Errorf("codec: read header: %w", err)
	}
	if hdr.Magic != magic {
		return nil, fmt.Errorf("codec: bad magic %#x", hdr.Magic)
	}
	if hdr.Version != version {
		return nil, fmt.Errorf("codec: unsupported version %d", hdr.Version)
	}

	verts := make([][3]float32, hdr.NumVerts)
	if err := ar.ReadSlice(verts); err != nil {
		return nil, fmt.Errorf("codec: read vertices: %w", err)
	}
	vertices := make([]geom.Vec3, hdr.NumVerts)
	for i, v := range verts {
		vertices[i] = geom.Vec3{X: v[0], Y: v[1], Z: v[2]}
	}

	typeIndex32 := make([]int32, hdr.NumPolys)
	if err := ar.ReadSlice(typeIndex32); err != nil {
		return nil, fmt.Errorf("codec: read type indices: %w", err)
	}
	typeIndex := make([]int, hdr.NumPolys)
	for i, ti := range typeIndex32 {
		typeIndex[i] = int(ti)
	}

	polygons := make([]navmesh.Polygon, hdr.NumPolys)
	for pi := range polygons {
		poly, err := readPolygon(ar)
		if err != nil {
			return nil, fmt.Errorf("codec: read polygon %d: %w", pi, err)
		}
		polygons[pi] = poly
	}

	var height *navmesh.HeightMesh
	if hdr.HasHeight != 0 {
		var err error
		height, err = readHeightMesh(ar)
		if err != nil {
			return nil, fmt.Errorf("codec: read height mesh: %w", err)
		}
	}

	return &navmesh.Mesh{
		Vertices:   vertices,
		Polygons:   polygons,
		Bounds:     geom.Bounds{Min: geom.Vec2{X: hdr.BoundsMin[0], Y: hdr.BoundsMin[1]}, Max: geom.Vec2{X: hdr.BoundsMax[0], Y: hdr.BoundsMax[1]}, MinZ: hdr.BoundsMinZ, MaxZ: hdr.BoundsMaxZ},
		Height:     height,
		TypeIndex:  typeIndex,
		NumRegions: int(hdr.NumRegions),
	}, nil
}

func readPolygon(ar *aligned.Reader) (navmesh.Polygon, error) {
	var nv int32
	if err := ar.ReadVal(&nv); err != nil {
		return navmesh.Polygon{}, err
	}
	idx32 := make([]int32, nv)
	if err := ar.ReadSlice(idx32); err != nil {
		return navmesh.Polygon{}, err
	}
	verts := make([]int, nv)
	for i, v := range idx32 {
		verts[i] = int(v)
	}

	conn := make([]navmesh.Connectivity, nv)
	for i := range conn {
		var rec struct {
			Connected int32
			Neighbour int32
			D0, D1    float32
		}
		if err := ar.ReadVal(&rec); err != nil {
			return navmesh.Polygon{}, err
		}
		conn[i] = navmesh.Connectivity{
			Connected:        rec.Connected != 0,
			NeighbourPolygon: int(rec.Neighbour),
			TravelDistances:  [2]float32{rec.D0, rec.D1},
		}
	}

	var center [3]float32
	if err := ar.ReadVal(&center); err != nil {
		return navmesh.Polygon{}, err
	}
	var bounds [6]float32
	if err := ar.ReadVal(&bounds); err != nil {
		return navmesh.Polygon{}, err
	}
	var region int32
	if err := ar.ReadVal(&region); err != nil {
		return navmesh.Polygon{}, err
	}

	return navmesh.Polygon{
		Vertices:     verts,
		Connectivity: conn,
		Center:       geom.Vec3{X: center[0], Y: center[1], Z: center[2]},
		Bounds:       geom.Bounds{Min: geom.Vec2{X: bounds[0], Y: bounds[1]}, Max: geom.Vec2{X: bounds[2], Y: bounds[3]}, MinZ: bounds[4], MaxZ: bounds[5]},
		Region:       int(region),
	}, nil
}

func readHeightMesh(ar *aligned.Reader) (*navmesh.HeightMesh, error) {
	var numFans int32
	if err := ar.ReadVal(&numFans); err != nil {
		return nil, err
	}
	triangles := make([][]geom.Triangle, numFans)
	for i := range triangles {
		var numTris int32
		if err := ar.ReadVal(&numTris); err != nil {
			return nil, err
		}
		fan := make([]geom.Triangle, numTris)
		for j := range fan {
			tri, err := readTriangle(ar)
			if err != nil {
				return nil, err
			}
			fan[j] = tri
		}
		triangles[i] = fan
	}
	return &navmesh.HeightMesh{Triangles: triangles}, nil
}

func readTriangle(ar *aligned.Reader) (geom.Triangle, error) {
	var rec [9]float32
	if err := ar.ReadVal(&rec); err != nil {
		return geom.Triangle{}, err
	}
	return geom.Triangle{
		A: geom.Vec2{X: rec[0], Y: rec[1]}, AZ: rec[2],
		B: geom.Vec2{X: rec[3], Y: rec[4]}, BZ: rec[5],
		C: geom.Vec2{X: rec[6], Y: rec[7]}, CZ: rec[8],
	}, nil
}

// Marshal and Unmarshal are convenience wrappers around WriteMesh/ReadMesh
// for callers that want an in-memory []byte rather than a stream.
func Marshal(m *navmesh.Mesh) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteMesh(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*navmesh.Mesh, error) {
	return ReadMesh(bytes.NewReader(data))
}
