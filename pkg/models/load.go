package models

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// Load reads a mesh, choosing the loader by file extension: .obj, .gltf,
// .glb or the binary .sft3d format. The image is the texture embedded in a
// glTF document, if any; it is always nil for the other formats.
func Load(path string) (*Mesh, image.Image, error) {
	var (
		mesh *Mesh
		img  image.Image
		err  error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, img, err = LoadGLTF(path)
	case ".obj":
		mesh, err = LoadOBJ(path)
	case BinaryExt:
		mesh, err = LoadBinary(path)
	default:
		return nil, nil, fmt.Errorf("unsupported format: %q (use .obj, .glb, .gltf or %s)", ext, BinaryExt)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load model: %w", err)
	}
	return mesh, img, nil
}
