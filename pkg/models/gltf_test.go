package models

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/sftrender/pkg/math3d"
)

// writeGLB saves a document with one indexed, textured triangle and one
// unindexed two-triangle strip without UVs.
func writeGLB(t *testing.T, dir string, withImage bool) string {
	t.Helper()

	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 2, 1})
	plain := modeler.WritePosition(doc, [][3]float32{
		{0, 0, 2}, {1, 0, 2}, {0, 1, 2},
		{1, 0, 2}, {1, 1, 2}, {0, 1, 2},
	})

	doc.Meshes = []*gltf.Mesh{
		{
			Name: "textured",
			Primitives: []*gltf.Primitive{{
				Mode:       gltf.PrimitiveTriangles,
				Indices:    gltf.Index(idx),
				Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv},
			}},
		},
		{
			Name: "plain",
			Primitives: []*gltf.Primitive{{
				Mode:       gltf.PrimitiveTriangles,
				Attributes: map[string]int{gltf.POSITION: plain},
			}},
		},
	}

	if withImage {
		img := image.NewRGBA(image.Rect(0, 0, 2, 1))
		img.Set(1, 0, color.RGBA{255, 0, 0, 255})
		f, err := os.Create(filepath.Join(dir, "base color.png"))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
		doc.Images = []*gltf.Image{{MimeType: "image/png", URI: "base%20color.png"}}
	}

	path := filepath.Join(dir, "model.glb")
	if err := gltf.SaveBinary(doc, path); err != nil {
		t.Fatalf("save glb: %v", err)
	}
	return path
}

func TestLoadGLTF(t *testing.T) {
	path := writeGLB(t, t.TempDir(), true)

	m, img, err := LoadGLTF(path)
	if err != nil {
		t.Fatalf("LoadGLTF: %v", err)
	}
	if m.TriangleCount() != 3 {
		t.Fatalf("triangles = %d, want 3", m.TriangleCount())
	}

	// Index order is kept, UVs are not flipped.
	first := m.Triangles[0]
	if first.Pos[1] != math3d.V3(0, 1, 0) || first.UV[1] != math3d.V2(0, 1) {
		t.Errorf("first triangle = %+v", first)
	}
	if last := m.Triangles[2]; last.Pos[1] != math3d.V3(1, 1, 2) || last.UV[1] != (math3d.Vec2{}) {
		t.Errorf("unindexed triangle = %+v", last)
	}
	if m.BoundsMax != math3d.V3(1, 1, 2) {
		t.Errorf("bounds max = %v", m.BoundsMax)
	}

	if img == nil {
		t.Fatal("image not loaded")
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Errorf("image bounds = %v", b)
	}
	if r, _, _, _ := img.At(1, 0).RGBA(); r != 0xFFFF {
		t.Errorf("image texel red = %x", r)
	}
}

func TestLoadGLTFWithoutImage(t *testing.T) {
	m, img, err := Load(writeGLB(t, t.TempDir(), false))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img != nil {
		t.Error("unexpected image")
	}
	if m.Name != "model.glb" {
		t.Errorf("name = %q", m.Name)
	}
}

func TestLoadGLTFInvalidPath(t *testing.T) {
	if _, _, err := LoadGLTF("/nonexistent/path.glb"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
