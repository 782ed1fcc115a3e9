package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/taigrr/sftrender/pkg/math3d"
	"github.com/taigrr/sftrender/pkg/models"
	"github.com/taigrr/sftrender/pkg/render"
)

const (
	defaultDistance = 3.0
	minDistance     = 1.0
	maxDistance     = 20.0
)

// viewerOptions is the flag-derived configuration shared by every front end.
type viewerOptions struct {
	Mode     render.RenderMode
	Bg       *render.Color // nil leaves undrawn pixels transparent
	Outline  bool
	Overlay  *render.Texture
	Fit      bool
	AutoSpin bool
}

// viewer owns the scene and the animation state. Input handlers run on
// other goroutines than the render loop, so every method locks mu.
type viewer struct {
	mu sync.Mutex

	name     string
	mesh     *models.Mesh
	texture  *render.Texture
	opts     viewerOptions
	renderer *render.Renderer
	camera   render.Camera

	clock     *TickClock
	rotation  *RotationState
	distance  float64
	textureOn bool
	showHUD   bool
	stats     render.FrameStats
}

func newViewer(name string, mesh *models.Mesh, tex *render.Texture, opts viewerOptions, width, height int) *viewer {
	if opts.Fit {
		mesh.Fit(2)
	}
	return &viewer{
		name:      filepath.Base(name),
		mesh:      mesh,
		texture:   tex,
		opts:      opts,
		renderer:  render.NewRenderer(width, height),
		camera:    render.DefaultCamera(width, height),
		clock:     NewTickClock(time.Now()),
		rotation:  NewRotationState(TicksPerSecond),
		distance:  defaultDistance,
		textureOn: true,
		showHUD:   true,
	}
}

// resize reallocates the buffers for a new target size.
func (v *viewer) resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.renderer.Resize(width, height)
	v.camera = render.DefaultCamera(width, height)
}

// step advances the animation by n ticks.
func (v *viewer) step(n int) {
	for range n {
		v.rotation.Update()
	}
}

// pose returns the model placement for the current tick.
func (v *viewer) pose() render.Pose {
	var pitch, yaw float64
	if v.opts.AutoSpin {
		pitch, yaw = render.AutoRotate(v.clock.Tick)
	}
	p := render.Pose{
		Pitch:    pitch + v.rotation.Pitch.Position,
		Yaw:      yaw + v.rotation.Yaw.Position,
		Position: math3d.V3(0, 0, v.distance),
	}
	if !v.opts.Fit {
		p.Offset = render.DefaultOffset
	}
	return p
}

func (v *viewer) scene() render.Scene {
	s := render.Scene{
		Mesh:    v.mesh,
		World:   v.pose().Matrix(),
		Mode:    v.opts.Mode,
		Color:   render.ColorGray,
		Outline: v.opts.Outline,
		Overlay: v.opts.Overlay,
	}
	switch {
	case s.Mode == render.ModeWireframe:
		s.Color = render.ColorGreen
	case v.textureOn:
		s.Texture = v.texture
	}
	return s
}

// frame advances the clock to now and renders one frame. The returned
// framebuffer stays valid until the next call.
func (v *viewer) frame(now time.Time) *render.Framebuffer {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.step(v.clock.Advance(now))
	return v.draw()
}

// draw renders the current state without advancing time.
func (v *viewer) draw() *render.Framebuffer {
	v.stats = v.renderer.RenderFrame(v.scene(), v.camera)
	fb := v.renderer.Framebuffer()
	if v.opts.Bg != nil {
		fb.FillTransparent(*v.opts.Bg)
	}
	return fb
}

func (v *viewer) impulse(pitch, yaw float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rotation.ApplyImpulse(pitch, yaw)
}

func (v *viewer) zoom(delta float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.distance = math.Min(maxDistance, math.Max(minDistance, v.distance+delta))
}

func (v *viewer) reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rotation.Reset()
	v.distance = defaultDistance
}

func (v *viewer) toggleTexture() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.textureOn = !v.textureOn
}

func (v *viewer) toggleSpin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.AutoSpin = !v.opts.AutoSpin
}

func (v *viewer) toggleOutline() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Outline = !v.opts.Outline
}

func (v *viewer) toggleHUD() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.showHUD = !v.showHUD
}

// cycleMode switches textured → flat → wire → textured.
func (v *viewer) cycleMode() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opts.Mode = (v.opts.Mode + 1) % 3
}

// status is a snapshot of what the HUD shows.
type status struct {
	Name      string
	Mode      render.RenderMode
	Textured  bool
	Tick      uint32
	ShowHUD   bool
	Triangles int
	Stats     render.FrameStats
}

func (v *viewer) status() status {
	v.mu.Lock()
	defer v.mu.Unlock()
	return status{
		Name:      v.name,
		Mode:      v.opts.Mode,
		Textured:  v.textureOn && v.texture != nil,
		Tick:      v.clock.Tick,
		ShowHUD:   v.showHUD,
		Triangles: v.mesh.TriangleCount(),
		Stats:     v.stats,
	}
}

// parseColor parses "R,G,B" into an opaque color. "none" and "" mean no
// background.
func parseColor(s string) (*render.Color, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("color %q: want R,G,B", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = uint8(n)
	}
	c := render.RGB(rgb[0], rgb[1], rgb[2])
	return &c, nil
}

// parseSize parses "WxH".
func parseSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	if w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return w, h, nil
}
