package render

import (
	"testing"
)

// rampTexture is 256×1 with R equal to the column, so a pixel's red channel
// reveals floor(u*256).
func rampTexture() *Texture {
	tex := NewTexture(256, 1)
	for x := range 256 {
		tex.SetPixel(x, 0, RGB(uint8(x), 0, 0))
	}
	return tex
}

func solidTexture(c Color) *Texture {
	tex := NewTexture(1, 1)
	tex.SetPixel(0, 0, c)
	return tex
}

// flatTriangle covers the top-left half of a size×size square at a constant
// reciprocal depth w.
func flatTriangle(size int, w float64) [3]ScreenVertex {
	return [3]ScreenVertex{
		{X: 0, Y: 0, W: w},
		{X: size, Y: 0, W: w},
		{X: 0, Y: size, W: w},
	}
}

func TestTextureTrianglePerspectiveCorrect(t *testing.T) {
	fb := NewFramebuffer(128, 128)
	depth := NewDepthBuffer(128, 128)

	// Along the top row u runs 0→1 while depth runs 1→4 (W = 1/z).
	// U is premultiplied by W.
	p := [3]ScreenVertex{
		{X: 0, Y: 0, U: 0, V: 0, W: 1},
		{X: 100, Y: 0, U: 1 * 0.25, V: 0, W: 0.25},
		{X: 0, Y: 100, U: 0, V: 0, W: 1},
	}
	TextureTriangle(fb, depth, p, rampTexture())

	// Screen midpoint of the top edge: t = 0.5.
	// Perspective-correct u = lerp(0, 0.25, .5) / lerp(1, .25, .5) = 0.2.
	got := fb.GetPixel(50, 0)
	if got.A != 0xFF {
		t.Fatalf("midpoint not drawn: %+v", got)
	}
	// floor(0.2*256) = 51; affine interpolation would give 128.
	if got.R != 51 {
		t.Errorf("midpoint texel = %d, want 51", got.R)
	}
	if d := depth.At(50, 0); d != 0.625 {
		t.Errorf("midpoint 1/z = %v, want 0.625", d)
	}
}

func TestTextureTriangleDepthOrderIndependent(t *testing.T) {
	near := solidTexture(ColorGreen)
	far := solidTexture(ColorWhite)
	nearTri := flatTriangle(20, 0.5) // z = 2
	farTri := flatTriangle(30, 0.1)  // z = 10

	draws := []struct {
		name  string
		order [2]int
	}{
		{"near first", [2]int{0, 1}},
		{"far first", [2]int{1, 0}},
	}

	for _, tc := range draws {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(32, 32)
			depth := NewDepthBuffer(32, 32)
			for _, which := range tc.order {
				if which == 0 {
					TextureTriangle(fb, depth, nearTri, near)
				} else {
					TextureTriangle(fb, depth, farTri, far)
				}
			}

			if got := fb.GetPixel(3, 3); got != ColorGreen {
				t.Errorf("overlap pixel = %+v, want near color", got)
			}
			if got := depth.At(3, 3); got != 0.5 {
				t.Errorf("overlap depth = %v, want 0.5", got)
			}
			if got := fb.GetPixel(2, 24); got != ColorWhite {
				t.Errorf("far-only pixel = %+v, want far color", got)
			}
		})
	}
}

func TestTextureTriangleOffscreenIsSafe(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	depth := NewDepthBuffer(16, 16)
	p := [3]ScreenVertex{
		{X: -50, Y: -40, W: 1},
		{X: 90, Y: 5, W: 1},
		{X: 8, Y: 70, W: 1},
	}

	n := TextureTriangle(fb, depth, p, solidTexture(ColorWhite))
	if n == 0 || n > 16*16 {
		t.Errorf("pixels written = %d, want within (0, 256]", n)
	}
}

func TestTextureTriangleTransparentTexelsOcclude(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	depth := NewDepthBuffer(8, 8)

	front := TextureTriangle(fb, depth, flatTriangle(8, 1), solidTexture(Color{}))
	if front == 0 {
		t.Fatal("transparent triangle wrote no pixels")
	}
	if got := depth.At(1, 1); got != 1 {
		t.Errorf("depth(1,1) = %v, want 1", got)
	}
	if got := fb.GetPixel(1, 1); got != (Color{A: 0xFF}) {
		t.Errorf("pixel(1,1) = %+v, want opaque black", got)
	}

	back := TextureTriangle(fb, depth, flatTriangle(8, 0.1), solidTexture(ColorWhite))
	if back != 0 {
		t.Errorf("farther triangle wrote %d pixels, want 0", back)
	}
	if got := depth.At(1, 1); got != 1 {
		t.Errorf("depth(1,1) after far triangle = %v, want 1", got)
	}
}

func TestTextureTriangleNilTexture(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	depth := NewDepthBuffer(8, 8)

	if n := TextureTriangle(fb, depth, flatTriangle(8, 1), nil); n != 0 {
		t.Errorf("pixels written = %d, want 0", n)
	}
	if depth.At(1, 1) != 0 {
		t.Error("depth written without a texture")
	}
}

func TestTextureTriangleDegenerate(t *testing.T) {
	tests := []struct {
		name string
		p    [3]ScreenVertex
	}{
		{"zero height", [3]ScreenVertex{{X: 0, Y: 3, W: 1}, {X: 5, Y: 3, W: 1}, {X: 7, Y: 3, W: 1}}},
		{"single point", [3]ScreenVertex{{X: 2, Y: 2, W: 1}, {X: 2, Y: 2, W: 1}, {X: 2, Y: 2, W: 1}}},
		{"zero width", [3]ScreenVertex{{X: 4, Y: 0, W: 1}, {X: 4, Y: 5, W: 1}, {X: 4, Y: 7, W: 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(8, 8)
			depth := NewDepthBuffer(8, 8)
			if n := TextureTriangle(fb, depth, tc.p, solidTexture(ColorWhite)); n != 0 {
				t.Errorf("pixels written = %d, want 0", n)
			}
		})
	}
}

func TestTextureTriangleSizeMismatch(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	depth := NewDepthBuffer(4, 4)
	if n := TextureTriangle(fb, depth, flatTriangle(8, 1), solidTexture(ColorWhite)); n != 0 {
		t.Errorf("pixels written = %d, want 0", n)
	}
}

func BenchmarkTextureTriangle(b *testing.B) {
	fb := NewFramebuffer(320, 200)
	depth := NewDepthBuffer(320, 200)
	tex := NewCheckerTexture(64, 64, 8, ColorWhite, ColorBlack)
	p := [3]ScreenVertex{
		{X: 10, Y: 5, U: 0, V: 0, W: 1},
		{X: 300, Y: 40, U: 0.5, V: 0, W: 0.5},
		{X: 60, Y: 190, U: 0, V: 1, W: 1},
	}

	for b.Loop() {
		depth.Clear()
		TextureTriangle(fb, depth, p, tex)
	}
}
