package render

// OutlineColor is written by Outline. Its alpha (0xFE) keeps outline pixels
// distinguishable from rasterized ones (0xFF).
var OutlineColor = Color{R: 0xFE, G: 0xFE, B: 0xFE, A: 0xFE}

// Outline traces a one-pixel border around everything drawn this frame: a
// transparent pixel with an opaque (alpha 0xFF) 4-neighbour becomes
// OutlineColor. The outermost rows and columns are left alone.
//
// Decisions read only rasterized pixels, so new outline pixels never feed
// into their neighbours.
func Outline(fb *Framebuffer) {
	w, h := fb.Width, fb.Height
	opaque := func(i int) bool { return fb.Pix[i*4+3] == 0xFF }

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if fb.Pix[i*4+3] != 0 {
				continue
			}
			if opaque(i-w) || opaque(i+w) || opaque(i-1) || opaque(i+1) {
				fb.Pix[i*4+0] = OutlineColor.R
				fb.Pix[i*4+1] = OutlineColor.G
				fb.Pix[i*4+2] = OutlineColor.B
				fb.Pix[i*4+3] = OutlineColor.A
			}
		}
	}
}

// Overlay copies every texel of tex with non-zero alpha onto fb, anchored at
// the top-left corner, as an opaque pixel. Parts of tex beyond fb are
// ignored.
func Overlay(fb *Framebuffer, tex *Texture) {
	w := min(fb.Width, tex.Width)
	h := min(fb.Height, tex.Height)

	for y := range h {
		for x := range w {
			s := (y*tex.Width + x) * 4
			if tex.Pix[s+3] == 0 {
				continue
			}
			d := (y*fb.Width + x) * 4
			fb.Pix[d+0] = tex.Pix[s+0]
			fb.Pix[d+1] = tex.Pix[s+1]
			fb.Pix[d+2] = tex.Pix[s+2]
			fb.Pix[d+3] = 0xFF
		}
	}
}
