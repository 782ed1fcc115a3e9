package render

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"math"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Texture is an immutable RGBA image addressed by normalized UV.
// Pix is row-major, four bytes per texel, V grows downward.
type Texture struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewTexture creates a transparent texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// LoadTexture loads a texture from disk. Files with the .sft2d extension
// use the raw binary format (see DecodeTexture); anything else goes
// through image.Decode (PNG, JPEG, BMP, WebP).
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".sft2d") {
		return DecodeTexture(f)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	tex := TextureFromImage(img)
	Logger().Debug("texture loaded", "path", path, "format", format, "width", tex.Width, "height", tex.Height)
	return tex, nil
}

// TextureFromImage copies any image into a texture.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	// Colors stay alpha-premultiplied. The rasterizer ignores texel alpha.
	return &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    rgba.Pix,
	}
}

// NewCheckerTexture creates a checkerboard pattern texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// SetPixel sets a texel. Out-of-range coordinates are ignored.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	i := (y*t.Width + x) * 4
	t.Pix[i+0] = c.R
	t.Pix[i+1] = c.G
	t.Pix[i+2] = c.B
	t.Pix[i+3] = c.A
}

// GetPixel returns a texel, or transparent black if out of range.
func (t *Texture) GetPixel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Color{}
	}
	i := (y*t.Width + x) * 4
	return Color{R: t.Pix[i+0], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}

// Sample returns the texel at floor(u*Width), floor(v*Height).
//
// Coordinates are clamped to the texture, so any UV (including NaN and
// values outside [0,1]) maps to an edge texel. An empty texture samples as
// transparent.
func (t *Texture) Sample(u, v float64) Color {
	if t.Width <= 0 || t.Height <= 0 {
		return Color{}
	}
	x := clampIndex(u*float64(t.Width), t.Width)
	y := clampIndex(v*float64(t.Height), t.Height)
	i := (y*t.Width + x) * 4
	return Color{R: t.Pix[i+0], G: t.Pix[i+1], B: t.Pix[i+2], A: t.Pix[i+3]}
}

// clampIndex floors f and clamps it to [0, n-1]. NaN maps to 0.
func clampIndex(f float64, n int) int {
	f = math.Floor(f)
	switch {
	case !(f >= 0):
		return 0
	case f >= float64(n-1):
		return n - 1
	}
	return int(f)
}

// ToImage copies the texture into an image.RGBA.
func (t *Texture) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	copy(img.Pix, t.Pix)
	return img
}
