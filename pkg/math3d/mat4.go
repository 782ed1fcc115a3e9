package math3d

import "math"

// Mat4 is a row-major 4x4 matrix used with row vectors: a point p is
// transformed as p × M. Translation lives in row 3.
//
// Composition reads left to right: a.Mul(b) applies a first, then b.
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[3][0] = v.X
	m[3][1] = v.Y
	m[3][2] = v.Z
	return m
}

// Scale returns a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotateX returns a rotation around the X axis (angle in radians).
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY returns a rotation around the Y axis (angle in radians).
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ returns a rotation around the Z axis (angle in radians).
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns a × b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var out Mat4
	for r := range 4 {
		for c := range 4 {
			out[r][c] = a[r][0]*b[0][c] +
				a[r][1]*b[1][c] +
				a[r][2]*b[2][c] +
				a[r][3]*b[3][c]
		}
	}
	return out
}

// MulVec4 transforms v as the point (X, Y, Z, 1) × m. The input W is ignored.
//
// The perspective divide is fused in: when the resulting w is non-zero, X, Y
// and Z are divided by it. The resulting w is always reported in W, divided
// or not, so callers can still reach the clip-space divisor.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	out := Vec4{
		X: v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + m[3][0],
		Y: v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + m[3][1],
		Z: v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + m[3][2],
		W: v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + m[3][3],
	}
	if out.W != 0 {
		out.X /= out.W
		out.Y /= out.W
		out.Z /= out.W
	}
	return out
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for r := range 4 {
		for c := range 4 {
			out[c][r] = m[r][c]
		}
	}
	return out
}

// PointAt builds the matrix that places an object at position looking toward
// target. Rows 0..2 are the right, up and forward axes; row 3 is position.
//
// The inverse of a PointAt matrix (see InverseTransform) is a view matrix.
func PointAt(position, target, up Vec4) Mat4 {
	forward := target.Sub(position).Normalize()
	newUp := up.Sub(forward.Scale(up.Dot(forward))).Normalize()
	right := newUp.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{position.X, position.Y, position.Z, 1},
	}
}

// InverseTransform inverts a rotation+translation matrix whose 3x3 block is
// orthonormal: the block is transposed and the translation is projected onto
// each axis and negated. The result is wrong for matrices with scale or
// shear.
func InverseTransform(m Mat4) Mat4 {
	tx, ty, tz := m[3][0], m[3][1], m[3][2]
	return Mat4{
		{m[0][0], m[1][0], m[2][0], 0},
		{m[0][1], m[1][1], m[2][1], 0},
		{m[0][2], m[1][2], m[2][2], 0},
		{
			-(tx*m[0][0] + ty*m[0][1] + tz*m[0][2]),
			-(tx*m[1][0] + ty*m[1][1] + tz*m[1][2]),
			-(tx*m[2][0] + ty*m[2][1] + tz*m[2][2]),
			1,
		},
	}
}

// Projection returns a perspective projection matrix.
//
// fovDeg is the full field of view in degrees. aspect is height/width and
// scales the X axis. View-space z ends up in w, so MulVec4 performs the
// perspective divide.
func Projection(fovDeg, aspect, near, far float64) Mat4 {
	fovRad := 1 / math.Tan(fovDeg*math.Pi/360)

	var m Mat4
	m[0][0] = aspect * fovRad
	m[1][1] = fovRad
	m[2][2] = far / (far - near)
	m[3][2] = (-far * near) / (far - near)
	m[2][3] = 1
	m[3][3] = 0
	return m
}
