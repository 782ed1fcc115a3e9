package math3d

import "math"

// Vec4 is a homogeneous point. W carries the clip-space divisor; once a
// vertex has been through the perspective divide its W is 1.
//
// Dot products, lengths and normalization only look at X, Y and Z.
// Arithmetic operators act on all four components, so interpolating two
// points also interpolates W.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 creates a new Vec4.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// P4 creates a point with W = 1.
func P4(x, y, z float64) Vec4 {
	return Vec4{x, y, z, 1}
}

// Vec3 drops W.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Add returns the vector sum.
//
//nolint:st1016 // a+b naming convention is clearer for vector operations
func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns the vector difference.
//
//nolint:st1016 // a-b naming convention is clearer for vector operations
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Scale multiplies every component by s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Div divides every component by s. No zero check.
func (v Vec4) Div(s float64) Vec4 {
	return Vec4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

// Dot returns the dot product of the XYZ parts.
//
//nolint:st1016 // a·b naming convention is clearer for vector operations
func (a Vec4) Dot(b Vec4) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product of the XYZ parts as a direction (W = 0).
//
//nolint:st1016 // a×b naming convention is clearer for vector operations
func (a Vec4) Cross(b Vec4) Vec4 {
	return Vec4{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the length of the XYZ part.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize scales XYZ to unit length using a square root. W is kept.
// A zero vector divides to NaN, as any other float division would.
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	return Vec4{v.X / l, v.Y / l, v.Z / l, v.W}
}

// NormalizeFast scales XYZ to approximately unit length using FastInvSqrt.
// The result is within about 0.2% of unit length. W is kept.
func (v Vec4) NormalizeFast() Vec4 {
	r := FastInvSqrt(v.Dot(v))
	return Vec4{v.X * r, v.Y * r, v.Z * r, v.W}
}

// Lerp interpolates all four components: a + (b-a)*t.
//
//nolint:st1016 // a,b naming convention is clearer for interpolation
func (a Vec4) Lerp(b Vec4, t float64) Vec4 {
	return a.Add(b.Sub(a).Scale(t))
}

// FastInvSqrt approximates 1/sqrt(x) with the float32 bit trick followed by a
// single Newton-Raphson step.
func FastInvSqrt(x float64) float64 {
	const threeHalfs = 1.5

	half := float32(x) * 0.5
	y := float32(x)
	i := math.Float32bits(y)
	i = 0x5f3759df - i>>1
	y = math.Float32frombits(i)
	y *= threeHalfs - half*y*y
	return float64(y)
}
