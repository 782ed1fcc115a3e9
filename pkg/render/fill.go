package render

import "math"

// flatHalf is a triangle with one horizontal edge: the base spans [lx, rx]
// on row baseY and the apex sits at (apexX, apexY).
type flatHalf struct {
	apexX, apexY int
	baseY        int
	lx, rx       int
}

// rows returns the first and last scanline covered, top first.
func (h flatHalf) rows() (ty, by int) {
	if h.apexY <= h.baseY {
		return h.apexY, h.baseY
	}
	return h.baseY, h.apexY
}

// splitFlat sorts the vertices by y and cuts the triangle at the middle
// vertex into at most two flat halves: one with a flat bottom and one with
// a flat top. Base ends are ordered so lx <= rx. The apex may lie outside
// [lx, rx] for obtuse triangles.
func splitFlat(p [3]ScreenVertex) []flatHalf {
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

	base := func(a, b int) (int, int) { return min(a, b), max(a, b) }

	switch {
	case p1.Y == p2.Y:
		lx, rx := base(p1.X, p2.X)
		return []flatHalf{{apexX: p0.X, apexY: p0.Y, baseY: p1.Y, lx: lx, rx: rx}}
	case p0.Y == p1.Y:
		lx, rx := base(p0.X, p1.X)
		return []flatHalf{{apexX: p2.X, apexY: p2.Y, baseY: p0.Y, lx: lx, rx: rx}}
	}

	portion := float64(p1.Y-p0.Y) / float64(p2.Y-p0.Y)
	x4 := p0.X + int(portion*float64(p2.X-p0.X))
	lx, rx := base(p1.X, x4)
	return []flatHalf{
		{apexX: p0.X, apexY: p0.Y, baseY: p1.Y, lx: lx, rx: rx},
		{apexX: p2.X, apexY: p2.Y, baseY: p1.Y, lx: lx, rx: rx},
	}
}

// FillTriangle fills a screen-space triangle with a flat color, ignoring
// UVs and depth. It returns the number of pixels written. Writes outside fb
// are dropped.
func FillTriangle(fb *Framebuffer, p [3]ScreenVertex, c Color) int {
	written := 0
	for _, h := range splitFlat(p) {
		written += fillFlat(fb, h, c)
	}
	return written
}

func fillFlat(fb *Framebuffer, h flatHalf, c Color) int {
	ty, by := h.rows()
	height := float64(h.baseY - h.apexY)
	written := 0

	for y := max(ty, 0); y <= by && y < fb.Height; y++ {
		var x1, x2 float64
		if height == 0 {
			x1 = float64(min(h.lx, h.apexX))
			x2 = float64(max(h.rx, h.apexX))
		} else {
			f := float64(y-h.apexY) / height
			x1 = float64(h.apexX) + float64(h.lx-h.apexX)*f
			x2 = float64(h.apexX) + float64(h.rx-h.apexX)*f
		}
		if x1 > x2 {
			x1, x2 = x2, x1
		}

		start := max(int(math.Floor(x1)), 0)
		end := min(int(math.Floor(x2))+1, fb.Width)
		for x := start; x < end; x++ {
			i := (y*fb.Width + x) * 4
			fb.Pix[i+0] = c.R
			fb.Pix[i+1] = c.G
			fb.Pix[i+2] = c.B
			fb.Pix[i+3] = 0xFF
			written++
		}
	}
	return written
}
