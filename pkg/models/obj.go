package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/sftrender/pkg/math3d"
	"github.com/taigrr/sftrender/pkg/render"
)

// LoadOBJ loads a Wavefront OBJ file.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ reads the geometry of an OBJ stream: "v" positions, "vt"
// texture coordinates and "f" faces in any of the v, v/vt, v//vn and
// v/vt/vn forms. Polygons are fan-triangulated from their first corner.
// Negative indices count back from the most recent element.
//
// OBJ puts V=0 at the bottom of the image, so V is flipped to 1-V to match
// the top-down texture layout. Corners without a texture coordinate get
// (0, 0). Every other statement is ignored.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	var (
		positions []math3d.Vec3
		uvs       []math3d.Vec2
		missingUV int
	)
	mesh := NewMesh("")

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, math3d.V3(v[0], v[1], v[2]))

		case "vt":
			v, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			uvs = append(uvs, math3d.V2(v[0], 1-v[1]))

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 corners, got %d", lineNo, len(fields)-1)
			}
			corners := make([]objCorner, len(fields)-1)
			for i, tok := range fields[1:] {
				c, err := parseCorner(tok, len(positions), len(uvs))
				if err != nil {
					return nil, fmt.Errorf("line %d: face corner %q: %w", lineNo, tok, err)
				}
				if c.uv < 0 {
					missingUV++
				}
				corners[i] = c
			}

			for i := 1; i+1 < len(corners); i++ {
				var t Triangle
				for k, c := range [3]objCorner{corners[0], corners[i], corners[i+1]} {
					t.Pos[k] = positions[c.pos]
					if c.uv >= 0 {
						t.UV[k] = uvs[c.uv]
					}
				}
				mesh.Triangles = append(mesh.Triangles, t)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if missingUV > 0 {
		render.Logger().Warn("obj corners without texture coordinates", "count", missingUV)
	}
	mesh.CalculateBounds()
	render.Logger().Debug("obj parsed",
		"positions", len(positions), "uvs", len(uvs), "triangles", len(mesh.Triangles))
	return mesh, nil
}

// objCorner holds resolved zero-based indices; uv is -1 when absent.
type objCorner struct {
	pos, uv int
}

func parseCorner(tok string, numPos, numUV int) (objCorner, error) {
	parts := strings.Split(tok, "/")

	pos, err := resolveIndex(parts[0], numPos)
	if err != nil {
		return objCorner{}, fmt.Errorf("position: %w", err)
	}
	c := objCorner{pos: pos, uv: -1}

	if len(parts) > 1 && parts[1] != "" {
		c.uv, err = resolveIndex(parts[1], numUV)
		if err != nil {
			return objCorner{}, fmt.Errorf("texture coordinate: %w", err)
		}
	}
	return c, nil
}

// resolveIndex turns a one-based or negative OBJ index into a zero-based
// one, checked against the n elements defined so far.
func resolveIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("%d of %d: %w", i, n, ErrBadIndex)
}

func parseFloats(fields []string, n int) ([]float64, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
