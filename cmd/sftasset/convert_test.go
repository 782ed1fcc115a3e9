package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/sftrender/pkg/models"
	"github.com/taigrr/sftrender/pkg/render"
)

const quadOBJ = `# quad
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestMeshCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quad.obj")
	out := filepath.Join(dir, "quad.sft3d")
	if err := os.WriteFile(in, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "mesh", "--fit", "4", in, out)
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	if !strings.Contains(stdout, "2 triangles") {
		t.Errorf("output = %q, want triangle count", stdout)
	}

	mesh, err := models.LoadBinary(out)
	if err != nil {
		t.Fatalf("LoadBinary: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("triangles = %d, want 2", mesh.TriangleCount())
	}
	if size := mesh.Size(); size.X < 3.999 || size.X > 4.001 {
		t.Errorf("fitted width = %v, want 4", size.X)
	}
}

func TestMeshCommandWithoutEmbeddedTexture(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(in, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "mesh", "--texture", filepath.Join(dir, "tex.sft2d"), in, filepath.Join(dir, "quad.sft3d"))
	if err == nil || !strings.Contains(err.Error(), "no embedded texture") {
		t.Errorf("err = %v, want missing texture error", err)
	}
}

func TestTextureCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "wide.png")
	writePNG(t, in, 40, 20)

	tests := []struct {
		name  string
		args  []string
		wantW int
		wantH int
	}{
		{"unchanged", nil, 40, 20},
		{"downscaled", []string{"--max", "10"}, 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, tt.name+".sft2d")
			args := append([]string{"texture", in, out}, tt.args...)
			if _, err := execute(t, args...); err != nil {
				t.Fatalf("texture: %v", err)
			}
			tex, err := render.LoadTexture(out)
			if err != nil {
				t.Fatalf("LoadTexture: %v", err)
			}
			if tex.Width != tt.wantW || tex.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", tex.Width, tex.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTextureCommandRejectsBadMax(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "img.png")
	writePNG(t, in, 4, 4)

	for _, m := range []string{"0", "2048"} {
		if _, err := execute(t, "texture", "--max", m, in, filepath.Join(dir, "out.sft2d")); err == nil {
			t.Errorf("--max %s: expected error", m)
		}
	}
}

func TestShrinkTexture(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{8, 8, 8, 8, 8},
		{16, 8, 4, 4, 2},
		{8, 16, 4, 2, 4},
		{100, 1, 10, 10, 1},
	}
	for _, tt := range tests {
		got := shrinkTexture(render.NewTexture(tt.w, tt.h), tt.max)
		if got.Width != tt.wantW || got.Height != tt.wantH {
			t.Errorf("shrink %dx%d to %d = %dx%d, want %dx%d",
				tt.w, tt.h, tt.max, got.Width, got.Height, tt.wantW, tt.wantH)
		}
	}
}

func TestInfoCommand(t *testing.T) {
	dir := t.TempDir()
	obj := filepath.Join(dir, "quad.obj")
	if err := os.WriteFile(obj, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	pngPath := filepath.Join(dir, "img.png")
	writePNG(t, pngPath, 6, 3)
	tex := filepath.Join(dir, "img.sft2d")
	if _, err := execute(t, "texture", pngPath, tex); err != nil {
		t.Fatal(err)
	}

	stdout, err := execute(t, "info", obj, tex)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"quad.obj: 2 triangles", "bounds 2 x 2 x 0", "img.sft2d: texture 6x3"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output %q missing %q", stdout, want)
		}
	}

	if _, err := execute(t, "info", filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}
