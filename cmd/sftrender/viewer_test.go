package main

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/sftrender/pkg/math3d"
	"github.com/taigrr/sftrender/pkg/models"
	"github.com/taigrr/sftrender/pkg/render"
)

func quadModel() *models.Mesh {
	m := models.NewMesh("quad")
	a, b, c, d := math3d.V3(-1, -1, 0), math3d.V3(1, -1, 0), math3d.V3(1, 1, 0), math3d.V3(-1, 1, 0)
	ua, ub, uc, ud := math3d.V2(0, 1), math3d.V2(1, 1), math3d.V2(1, 0), math3d.V2(0, 0)
	m.Triangles = []models.Triangle{
		{Pos: [3]math3d.Vec3{a, b, c}, UV: [3]math3d.Vec2{ua, ub, uc}},
		{Pos: [3]math3d.Vec3{a, c, d}, UV: [3]math3d.Vec2{ua, uc, ud}},
	}
	return m
}

func testViewer(opts viewerOptions) *viewer {
	tex := render.NewCheckerTexture(8, 8, 2, render.ColorWhite, render.RGB(255, 0, 0))
	return newViewer("models/quad.obj", quadModel(), tex, opts, 64, 40)
}

func TestViewerDraw(t *testing.T) {
	bg := render.RGB(1, 2, 3)
	v := testViewer(viewerOptions{Fit: true, Bg: &bg})

	fb := v.draw()
	if v.stats.Triangles != 2 || v.stats.Pixels == 0 {
		t.Fatalf("stats = %+v, want the quad drawn", v.stats)
	}
	if got := fb.GetPixel(0, 0); got != bg {
		t.Errorf("corner = %+v, want background", got)
	}
	if got := fb.GetPixel(32, 20); got == bg || got.A != 0xFF {
		t.Errorf("center = %+v, want a model pixel", got)
	}

	st := v.status()
	if st.Name != "quad.obj" || st.Triangles != 2 || !st.Textured {
		t.Errorf("status = %+v", st)
	}
}

func TestViewerPose(t *testing.T) {
	v := testViewer(viewerOptions{Fit: true, AutoSpin: true})

	p := v.pose()
	if math.Abs(p.Pitch+0.1*math.Pi) > 1e-12 || p.Yaw != 0 {
		t.Errorf("pose at tick 0 = %+v", p)
	}
	if p.Offset != (math3d.Vec3{}) || p.Position.Z != defaultDistance {
		t.Errorf("fitted pose = %+v", p)
	}

	v.impulse(0, 0.5)
	v.step(1)
	v.opts.AutoSpin = false
	if p := v.pose(); p.Pitch != 0 || p.Yaw != 0.5 {
		t.Errorf("pose with spin paused = %+v, want only the user yaw", p)
	}

	raw := testViewer(viewerOptions{})
	if p := raw.pose(); p.Offset != render.DefaultOffset {
		t.Errorf("unfitted offset = %v", p.Offset)
	}
}

func TestViewerToggles(t *testing.T) {
	v := testViewer(viewerOptions{})

	modes := []render.RenderMode{render.ModeFlat, render.ModeWireframe, render.ModeTextured}
	for _, want := range modes {
		v.cycleMode()
		if v.opts.Mode != want {
			t.Fatalf("mode = %v, want %v", v.opts.Mode, want)
		}
	}

	if s := v.scene(); s.Texture == nil {
		t.Error("textured scene has no texture")
	}
	v.toggleTexture()
	if s := v.scene(); s.Texture != nil {
		t.Error("texture still bound after toggling it off")
	}

	v.zoom(100)
	if v.distance != maxDistance {
		t.Errorf("distance = %v, want clamped to %v", v.distance, maxDistance)
	}
	v.reset()
	if v.distance != defaultDistance {
		t.Errorf("distance after reset = %v", v.distance)
	}
}

func TestRunSnapshot(t *testing.T) {
	v := testViewer(viewerOptions{Fit: true, AutoSpin: true})
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := runSnapshot(v, 250, path, 2); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}
	if v.clock.Tick != 250 {
		t.Errorf("tick = %d, want 250", v.clock.Tick)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 128 || cfg.Height != 80 {
		t.Errorf("snapshot is %dx%d, want 128x80", cfg.Width, cfg.Height)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    *render.Color
		wantErr bool
	}{
		{"30,30,40", &render.Color{R: 30, G: 30, B: 40, A: 255}, false},
		{" 1, 2 ,3", &render.Color{R: 1, G: 2, B: 3, A: 255}, false},
		{"none", nil, false},
		{"", nil, false},
		{"1,2", nil, true},
		{"1,2,300", nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseColor(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if (got == nil) != (tc.want == nil) || (got != nil && *got != *tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	if w, h, err := parseSize("320X200"); err != nil || w != 320 || h != 200 {
		t.Errorf("parseSize = %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"320", "0x10", "ax10", "10x-1"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) accepted", bad)
		}
	}
}
