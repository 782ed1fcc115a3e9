// Package models provides triangle meshes and the loaders that produce them:
// the compact binary mesh format, Wavefront OBJ, and glTF/GLB.
package models

import (
	"github.com/taigrr/sftrender/pkg/math3d"
)

// Triangle is one mesh face: three positions and a UV pair per corner.
// Corners are not shared between triangles.
type Triangle struct {
	Pos [3]math3d.Vec3
	UV  [3]math3d.Vec2
}

// Mesh is an ordered triangle list. Order is preserved through every
// loader and is the order the renderer draws in.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Triangles[0].Pos[0]
	m.BoundsMax = m.Triangles[0].Pos[0]

	for _, t := range m.Triangles {
		for _, p := range t.Pos {
			m.BoundsMin = m.BoundsMin.Min(p)
			m.BoundsMax = m.BoundsMax.Max(p)
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
// Implements render.MeshSource.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// GetTriangle returns the positions and UVs of triangle i.
// Implements render.MeshSource.
func (m *Mesh) GetTriangle(i int) ([3]math3d.Vec3, [3]math3d.Vec2) {
	t := &m.Triangles[i]
	return t.Pos, t.UV
}

// Transform applies a transformation matrix to every position and
// recomputes the bounds. UVs are unchanged.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		t := &m.Triangles[i]
		for k := range 3 {
			t.Pos[k] = mat.MulVec4(t.Pos[k].Point()).Vec3()
		}
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Flat or empty meshes are only centered.
func (m *Mesh) Fit(size float64) {
	m.CalculateBounds()
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)

	transform := math3d.Translate(m.Center().Scale(-1))
	if maxDim > 0 {
		s := size / maxDim
		transform = transform.Mul(math3d.Scale(math3d.V3(s, s, s)))
	}
	m.Transform(transform)
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Triangles: make([]Triangle, len(m.Triangles)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Triangles, m.Triangles)
	return clone
}
