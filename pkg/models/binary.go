package models

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/sftrender/pkg/math3d"
	"github.com/taigrr/sftrender/pkg/render"
)

// BinaryExt is the file extension of the binary mesh format.
const BinaryExt = ".sft3d"

// Limits caps the table sizes accepted by DecodeBinary. Buffers are sized
// from the header, so the caps bound memory before any data is read.
type Limits struct {
	MaxVertices  int
	MaxUVs       int
	MaxTriangles int
}

// DefaultLimits are the capacities used by LoadBinary and EncodeBinary.
var DefaultLimits = Limits{
	MaxVertices:  4096,
	MaxUVs:       4096,
	MaxTriangles: 2048,
}

var (
	// ErrCapacity is returned when a mesh has more vertices, UVs or
	// triangles than the limits allow.
	ErrCapacity = errors.New("mesh exceeds capacity")

	// ErrBadIndex is returned when a triangle refers to a vertex or UV that
	// does not exist.
	ErrBadIndex = errors.New("index out of range")
)

type binaryHeader struct {
	Vertices  uint16
	UVs       uint16
	Triangles uint16
}

type binaryFace struct {
	V  [3]uint16
	UV [3]uint16
}

// DecodeBinary reads the binary mesh format. All values are big-endian:
//
//	u16 vertexCount, u16 uvCount, u16 triangleCount
//	vertexCount × f32[3]  positions
//	uvCount     × f32[2]  texture coordinates
//	triangleCount × (u16[3] position indices, u16[3] uv indices)
//
// Counts above lim fail with ErrCapacity before the tables are read.
func DecodeBinary(r io.Reader, lim Limits) (*Mesh, error) {
	br := bufio.NewReader(r)

	var hdr binaryHeader
	if err := binary.Read(br, binary.BigEndian, &hdr); err != nil {
		return nil, fmt.Errorf("read mesh header: %w", err)
	}
	switch {
	case int(hdr.Vertices) > lim.MaxVertices:
		return nil, fmt.Errorf("%d vertices (max %d): %w", hdr.Vertices, lim.MaxVertices, ErrCapacity)
	case int(hdr.UVs) > lim.MaxUVs:
		return nil, fmt.Errorf("%d uvs (max %d): %w", hdr.UVs, lim.MaxUVs, ErrCapacity)
	case int(hdr.Triangles) > lim.MaxTriangles:
		return nil, fmt.Errorf("%d triangles (max %d): %w", hdr.Triangles, lim.MaxTriangles, ErrCapacity)
	}

	positions := make([][3]float32, hdr.Vertices)
	if err := binary.Read(br, binary.BigEndian, positions); err != nil {
		return nil, fmt.Errorf("read vertices: %w", err)
	}
	uvs := make([][2]float32, hdr.UVs)
	if err := binary.Read(br, binary.BigEndian, uvs); err != nil {
		return nil, fmt.Errorf("read uvs: %w", err)
	}
	faces := make([]binaryFace, hdr.Triangles)
	if err := binary.Read(br, binary.BigEndian, faces); err != nil {
		return nil, fmt.Errorf("read triangles: %w", err)
	}

	mesh := &Mesh{Triangles: make([]Triangle, len(faces))}
	for i, f := range faces {
		t := &mesh.Triangles[i]
		for k := range 3 {
			if int(f.V[k]) >= len(positions) {
				return nil, fmt.Errorf("triangle %d vertex %d: %w", i, f.V[k], ErrBadIndex)
			}
			if int(f.UV[k]) >= len(uvs) {
				return nil, fmt.Errorf("triangle %d uv %d: %w", i, f.UV[k], ErrBadIndex)
			}
			p := positions[f.V[k]]
			uv := uvs[f.UV[k]]
			t.Pos[k] = math3d.V3(float64(p[0]), float64(p[1]), float64(p[2]))
			t.UV[k] = math3d.V2(float64(uv[0]), float64(uv[1]))
		}
	}
	mesh.CalculateBounds()

	render.Logger().Debug("binary mesh decoded",
		"vertices", hdr.Vertices, "uvs", hdr.UVs, "triangles", hdr.Triangles)
	return mesh, nil
}

// EncodeBinary writes m in the format read by DecodeBinary. Positions and
// UVs are stored as float32 and shared between triangles when their
// float32 values are equal. A mesh whose tables exceed DefaultLimits fails
// with ErrCapacity.
func EncodeBinary(w io.Writer, m *Mesh) error {
	if len(m.Triangles) > DefaultLimits.MaxTriangles {
		return fmt.Errorf("%d triangles (max %d): %w", len(m.Triangles), DefaultLimits.MaxTriangles, ErrCapacity)
	}

	var (
		positions [][3]float32
		uvs       [][2]float32
		posIndex  = make(map[[3]float32]uint16)
		uvIndex   = make(map[[2]float32]uint16)
		faces     = make([]binaryFace, len(m.Triangles))
	)

	for i, t := range m.Triangles {
		for k := range 3 {
			p := [3]float32{float32(t.Pos[k].X), float32(t.Pos[k].Y), float32(t.Pos[k].Z)}
			idx, ok := posIndex[p]
			if !ok {
				if len(positions) == DefaultLimits.MaxVertices {
					return fmt.Errorf("more than %d vertices: %w", DefaultLimits.MaxVertices, ErrCapacity)
				}
				idx = uint16(len(positions))
				posIndex[p] = idx
				positions = append(positions, p)
			}
			faces[i].V[k] = idx

			uv := [2]float32{float32(t.UV[k].X), float32(t.UV[k].Y)}
			idx, ok = uvIndex[uv]
			if !ok {
				if len(uvs) == DefaultLimits.MaxUVs {
					return fmt.Errorf("more than %d uvs: %w", DefaultLimits.MaxUVs, ErrCapacity)
				}
				idx = uint16(len(uvs))
				uvIndex[uv] = idx
				uvs = append(uvs, uv)
			}
			faces[i].UV[k] = idx
		}
	}

	bw := bufio.NewWriter(w)
	hdr := binaryHeader{
		Vertices:  uint16(len(positions)),
		UVs:       uint16(len(uvs)),
		Triangles: uint16(len(faces)),
	}
	for _, v := range []any{hdr, positions, uvs, faces} {
		if err := binary.Write(bw, binary.BigEndian, v); err != nil {
			return fmt.Errorf("write mesh: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write mesh: %w", err)
	}

	render.Logger().Debug("binary mesh encoded",
		"vertices", hdr.Vertices, "uvs", hdr.UVs, "triangles", hdr.Triangles)
	return nil
}

// LoadBinary reads a binary mesh file with DefaultLimits.
func LoadBinary(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()

	mesh, err := DecodeBinary(f, DefaultLimits)
	if err != nil {
		return nil, err
	}
	mesh.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return mesh, nil
}

// SaveBinary writes m to path in the binary mesh format.
func SaveBinary(path string, m *Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mesh: %w", err)
	}
	if err := EncodeBinary(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
