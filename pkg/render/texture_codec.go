package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxTextureSize bounds each dimension of a decoded binary texture.
const MaxTextureSize = 1024

var (
	// ErrTextureCapacity is returned when a texture header declares
	// dimensions beyond MaxTextureSize.
	ErrTextureCapacity = errors.New("texture exceeds capacity")

	// ErrShortTexture is returned when texel data ends before the size
	// declared in the header.
	ErrShortTexture = errors.New("texture data truncated")
)

// DecodeTexture reads the raw binary texture format:
//
//	u16 width, u16 height (big-endian)
//	width*height RGBA texels, row-major
func DecodeTexture(r io.Reader) (*Texture, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read texture header: %w", err)
	}
	w := int(binary.BigEndian.Uint16(hdr[0:2]))
	h := int(binary.BigEndian.Uint16(hdr[2:4]))
	if w > MaxTextureSize || h > MaxTextureSize {
		return nil, fmt.Errorf("%dx%d: %w", w, h, ErrTextureCapacity)
	}

	tex := NewTexture(w, h)
	if _, err := io.ReadFull(r, tex.Pix); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%dx%d: %w", w, h, ErrShortTexture)
		}
		return nil, fmt.Errorf("read texels: %w", err)
	}

	Logger().Debug("binary texture decoded", "width", w, "height", h)
	return tex, nil
}

// EncodeTexture writes t in the format read by DecodeTexture.
func EncodeTexture(w io.Writer, t *Texture) error {
	if t.Width > MaxTextureSize || t.Height > MaxTextureSize {
		return fmt.Errorf("%dx%d: %w", t.Width, t.Height, ErrTextureCapacity)
	}

	bw := bufio.NewWriter(w)
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(t.Width))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(t.Height))
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("write texture header: %w", err)
	}
	if _, err := bw.Write(t.Pix[:t.Width*t.Height*4]); err != nil {
		return fmt.Errorf("write texels: %w", err)
	}
	return bw.Flush()
}
