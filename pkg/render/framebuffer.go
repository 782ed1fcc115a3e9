// Package render implements the software triangle pipeline: plane clipping,
// the camera transform chain, perspective-correct scan conversion against a
// reciprocal depth buffer, and the per-frame orchestration tying them
// together. It also carries the presentation helpers used by the viewers.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// Framebuffer is the colour target: a flat RGBA byte array, row-major,
// four bytes per pixel. A pixel with alpha 0 has not been drawn this frame.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFramebuffer allocates a transparent framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Reset clears every byte to zero (transparent black).
func (fb *Framebuffer) Reset() {
	clear(fb.Pix)
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	for i := 0; i < len(fb.Pix); i += 4 {
		fb.Pix[i+0] = c.R
		fb.Pix[i+1] = c.G
		fb.Pix[i+2] = c.B
		fb.Pix[i+3] = c.A
	}
}

// FillTransparent paints c under every pixel that is still fully
// transparent. Viewers use it to apply a background after drawing.
func (fb *Framebuffer) FillTransparent(c Color) {
	for i := 0; i < len(fb.Pix); i += 4 {
		if fb.Pix[i+3] == 0 {
			fb.Pix[i+0] = c.R
			fb.Pix[i+1] = c.G
			fb.Pix[i+2] = c.B
			fb.Pix[i+3] = c.A
		}
	}
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color.
// Out-of-range coordinates are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i+0] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return Color{}
	}
	i := (y*fb.Width + x) * 4
	return Color{R: fb.Pix[i+0], G: fb.Pix[i+1], B: fb.Pix[i+2], A: fb.Pix[i+3]}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Pixels outside the framebuffer are skipped, the rest of the line is drawn.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage wraps the pixel data in an image.RGBA without copying.
// The image aliases the framebuffer and changes with it.
func (fb *Framebuffer) ToImage() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	return fb.SaveScaledPNG(path, 1)
}

// SaveScaledPNG saves the framebuffer as a PNG, upscaled by an integer
// factor with nearest-neighbour sampling so pixels stay crisp.
func (fb *Framebuffer) SaveScaledPNG(path string, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}

	var img image.Image = fb.ToImage()
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
