package render

import (
	"math"
)

// ScreenVertex is a rasterizer input: integer pixel coordinates plus the
// perspective-premultiplied texture weight (U/z, V/z, 1/z).
type ScreenVertex struct {
	X, Y    int
	U, V, W float64
}

// edge walks one triangle edge a scanline at a time.
type edge struct {
	x0             int
	u0, v0, w0     float64
	dx, du, dv, dw float64 // per-scanline steps
}

// newEdge prepares stepping from a to b. A zero-height edge gets zero steps.
func newEdge(a, b ScreenVertex) edge {
	e := edge{x0: a.X, u0: a.U, v0: a.V, w0: a.W}
	if dy := b.Y - a.Y; dy != 0 {
		inv := 1 / math.Abs(float64(dy))
		e.dx = float64(b.X-a.X) * inv
		e.du = (b.U - a.U) * inv
		e.dv = (b.V - a.V) * inv
		e.dw = (b.W - a.W) * inv
	}
	return e
}

// at returns the edge sample i scanlines below its start.
func (e edge) at(i int) spanEnd {
	f := float64(i)
	return spanEnd{
		x: e.x0 + int(f*e.dx),
		u: e.u0 + f*e.du,
		v: e.v0 + f*e.dv,
		w: e.w0 + f*e.dw,
	}
}

type spanEnd struct {
	x       int
	u, v, w float64
}

// TextureTriangle scan-converts one screen-space triangle into fb with
// perspective-correct texturing and a reciprocal depth test, and returns
// the number of pixels written.
//
// Vertices are sorted by y and the triangle is split at the middle vertex
// into an upper and a lower half that share the long edge. Each span is
// filled over [left, right). A pixel is written when its interpolated 1/z
// is strictly greater than the stored one; the true UV is recovered as
// (U/W, V/W). Every pixel that passes the depth test takes the texel's
// RGB with alpha 0xFF and updates depth, whatever the texel's alpha.
//
// fb and depth must have the same dimensions and tex must be non-nil;
// otherwise nothing is drawn. Every write is bounds-checked, so triangles
// that were not clipped to the screen are safe, just wasteful.
func TextureTriangle(fb *Framebuffer, depth *DepthBuffer, p [3]ScreenVertex, tex *Texture) int {
	if tex == nil || fb.Width != depth.Width || fb.Height != depth.Height {
		return 0
	}

	p0, p1, p2 := p[0], p[1], p[2]
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}

	long := newEdge(p0, p2)
	written := 0

	if p1.Y != p0.Y {
		short := newEdge(p0, p1)
		for y := p0.Y; y <= p1.Y; y++ {
			written += texSpan(fb, depth, tex, y, short.at(y-p0.Y), long.at(y-p0.Y))
		}
	}

	if p2.Y != p1.Y {
		short := newEdge(p1, p2)
		for y := p1.Y; y <= p2.Y; y++ {
			written += texSpan(fb, depth, tex, y, short.at(y-p1.Y), long.at(y-p0.Y))
		}
	}

	return written
}

func texSpan(fb *Framebuffer, depth *DepthBuffer, tex *Texture, y int, a, b spanEnd) int {
	if y < 0 || y >= fb.Height {
		return 0
	}
	if a.x > b.x {
		a, b = b, a
	}
	if a.x == b.x {
		return 0
	}

	tStep := 1 / float64(b.x-a.x)
	row := y * fb.Width
	written := 0

	for x := max(a.x, 0); x < b.x && x < fb.Width; x++ {
		t := float64(x-a.x) * tStep
		w := (1-t)*a.w + t*b.w
		idx := row + x
		if !(w > depth.InvDepth[idx]) {
			continue
		}

		u := ((1-t)*a.u + t*b.u) / w
		v := ((1-t)*a.v + t*b.v) / w
		c := tex.Sample(u, v)

		i := idx * 4
		fb.Pix[i+0] = c.R
		fb.Pix[i+1] = c.G
		fb.Pix[i+2] = c.B
		fb.Pix[i+3] = 0xFF
		depth.InvDepth[idx] = w
		written++
	}
	return written
}

// toScreenVertices rounds a clipped screen-space triangle to pixel
// coordinates, clamping x to [0, width] and y to [0, height].
func toScreenVertices(tri *Triangle, width, height int) [3]ScreenVertex {
	var out [3]ScreenVertex
	for i := range 3 {
		out[i] = ScreenVertex{
			X: clampInt(int(math.Round(tri.V[i].X)), 0, width),
			Y: clampInt(int(math.Round(tri.V[i].Y)), 0, height),
			U: tri.UV[i].U,
			V: tri.UV[i].V,
			W: tri.UV[i].W,
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
