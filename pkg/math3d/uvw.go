package math3d

// UVW is a texture coordinate paired with a perspective weight.
//
// Before projection W is unused. After projection the pipeline stores
// 1/view_z in W and premultiplies U and V by it, so the true coordinate at
// any interpolated point is (U/W, V/W).
type UVW struct {
	U, V, W float64
}

// Add returns the component-wise sum.
func (a UVW) Add(b UVW) UVW {
	return UVW{a.U + b.U, a.V + b.V, a.W + b.W}
}

// Sub returns the component-wise difference.
func (a UVW) Sub(b UVW) UVW {
	return UVW{a.U - b.U, a.V - b.V, a.W - b.W}
}

// Scale multiplies every component by s.
func (a UVW) Scale(s float64) UVW {
	return UVW{a.U * s, a.V * s, a.W * s}
}

// Lerp returns a + (b-a)*t, the same parametric form used for clip points.
func (a UVW) Lerp(b UVW, t float64) UVW {
	return a.Add(b.Sub(a).Scale(t))
}
