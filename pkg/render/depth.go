package render

// DepthBuffer stores one reciprocal depth (1/view_z) per pixel.
//
// Larger values are closer. A cleared buffer holds 0 everywhere, which
// means infinitely far: any visible fragment has a positive 1/z and wins.
type DepthBuffer struct {
	Width    int
	Height   int
	InvDepth []float64
}

// NewDepthBuffer allocates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		Width:    width,
		Height:   height,
		InvDepth: make([]float64, width*height),
	}
}

// Clear resets every entry to 0 (infinitely far).
func (d *DepthBuffer) Clear() {
	clear(d.InvDepth)
}

// At returns the stored reciprocal depth, or 0 outside the buffer.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0
	}
	return d.InvDepth[y*d.Width+x]
}
