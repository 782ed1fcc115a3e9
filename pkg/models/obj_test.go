package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/taigrr/sftrender/pkg/math3d"
)

const quadOBJ = `# unit quad
o quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestParseOBJQuad(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.TriangleCount() != 2 {
		t.Fatalf("triangles = %d, want 2", m.TriangleCount())
	}

	// Fan from the first corner: (1,2,3) and (1,3,4).
	second := m.Triangles[1]
	if second.Pos != [3]math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 1, 0), math3d.V3(0, 1, 0)} {
		t.Errorf("second triangle = %v", second.Pos)
	}
	// V is flipped.
	if second.UV != [3]math3d.Vec2{math3d.V2(0, 1), math3d.V2(1, 0), math3d.V2(0, 0)} {
		t.Errorf("second triangle uvs = %v", second.UV)
	}
	if m.Size() != math3d.V3(1, 1, 0) {
		t.Errorf("size = %v", m.Size())
	}
}

func TestParseOBJCornerForms(t *testing.T) {
	src := `v 0 0 0
v 2 0 0
v 0 2 0
vt 0.5 0.25
f -3/-1 -2//1 -1
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.TriangleCount() != 1 {
		t.Fatalf("triangles = %d, want 1", m.TriangleCount())
	}

	tri := m.Triangles[0]
	if tri.Pos[1] != math3d.V3(2, 0, 0) || tri.Pos[2] != math3d.V3(0, 2, 0) {
		t.Errorf("negative indices resolved to %v", tri.Pos)
	}
	if tri.UV[0] != math3d.V2(0.5, 0.75) {
		t.Errorf("uv = %v, want (0.5, 0.75)", tri.UV[0])
	}
	if tri.UV[1] != (math3d.Vec2{}) || tri.UV[2] != (math3d.Vec2{}) {
		t.Errorf("corners without vt got %v", tri.UV)
	}
}

func TestParseOBJErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		target error
	}{
		{"index past end", "v 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrBadIndex},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n", ErrBadIndex},
		{"uv index", "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 1/1 2/1 3/1\n", ErrBadIndex},
		{"short vertex", "v 0 0\n", nil},
		{"bad number", "v 0 x 0\n", nil},
		{"two-corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(tc.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("err = %v, want %v", err, tc.target)
			}
		})
	}
}

func TestLoadOBJ(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if m.Name != "quad.obj" || m.TriangleCount() != 2 {
		t.Errorf("loaded %q with %d triangles", m.Name, m.TriangleCount())
	}

	if _, err := LoadOBJ("/nonexistent/path.obj"); err == nil {
		t.Error("missing file accepted")
	}
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	objPath := filepath.Join(dir, "quad.OBJ")
	if err := os.WriteFile(objPath, []byte(quadOBJ), 0o644); err != nil {
		t.Fatal(err)
	}
	binPath := filepath.Join(dir, "quad"+BinaryExt)
	if err := SaveBinary(binPath, testMesh()); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{objPath, binPath} {
		m, img, err := Load(path)
		if err != nil {
			t.Errorf("Load(%s): %v", filepath.Base(path), err)
			continue
		}
		if m.TriangleCount() != 2 || img != nil {
			t.Errorf("Load(%s) = %d triangles, image %v", filepath.Base(path), m.TriangleCount(), img)
		}
	}

	if _, _, err := Load(filepath.Join(dir, "model.stl")); err == nil {
		t.Error("unsupported extension accepted")
	}
}
