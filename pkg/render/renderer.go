package render

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/taigrr/sftrender/pkg/math3d"
)

// MeshSource is the shape the renderer needs from a mesh: an ordered list
// of triangles with a position and a UV per corner. The models package
// implements it; render does not import models.
type MeshSource interface {
	TriangleCount() int
	GetTriangle(i int) (pos [3]math3d.Vec3, uv [3]math3d.Vec2)
}

// RenderMode controls how surviving screen triangles are drawn.
type RenderMode int

const (
	ModeTextured  RenderMode = iota // Perspective-correct texture, depth tested
	ModeFlat                        // Solid color, no depth test
	ModeWireframe                   // Triangle edges only
)

var modeNames = [...]string{
	ModeTextured:  "textured",
	ModeFlat:      "flat",
	ModeWireframe: "wire",
}

func (m RenderMode) String() string {
	if int(m) < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("RenderMode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseRenderMode parses "textured", "flat" or "wire".
func ParseRenderMode(s string) (RenderMode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return RenderMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q (want textured, flat or wire)", s)
}

// Scene is everything drawn in one frame.
type Scene struct {
	Mesh    MeshSource
	Texture *Texture    // Required for ModeTextured; without it the mesh is drawn flat
	World   math3d.Mat4 // Model→world transform, see Pose
	Mode    RenderMode
	Color   Color // Flat fill and wireframe color

	Outline bool     // Trace a light outline around drawn pixels
	Overlay *Texture // Composited over the frame last, anchored top-left
}

// FrameStats counts what happened to the mesh during one frame.
type FrameStats struct {
	Triangles   int // Submitted from the mesh
	NearDropped int // Removed entirely by the near plane
	NearOut     int // Produced by the near clip (0, 1 or 2 per input)
	Rasterized  int // Screen triangles handed to a fill routine
	Pixels      int // Pixels written by fills
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("triangles", s.Triangles),
		slog.Int("near_dropped", s.NearDropped),
		slog.Int("near_out", s.NearOut),
		slog.Int("rasterized", s.Rasterized),
		slog.Int("pixels", s.Pixels),
	)
}

// Renderer owns a color and a reciprocal depth buffer and draws scenes
// into them. A Renderer is not safe for concurrent use: a frame runs to
// completion on the calling goroutine and the buffers are reused in place.
type Renderer struct {
	fb    *Framebuffer
	depth *DepthBuffer

	one     [1]Triangle
	scratch [2][]Triangle
}

// NewRenderer creates a renderer with width×height buffers.
func NewRenderer(width, height int) *Renderer {
	r := &Renderer{}
	r.Resize(width, height)
	return r
}

// Resize reallocates both buffers.
func (r *Renderer) Resize(width, height int) {
	r.fb = NewFramebuffer(width, height)
	r.depth = NewDepthBuffer(width, height)
	Logger().Info("renderer buffers allocated", "width", width, "height", height)
}

// Width returns the buffer width in pixels.
func (r *Renderer) Width() int { return r.fb.Width }

// Height returns the buffer height in pixels.
func (r *Renderer) Height() int { return r.fb.Height }

// Framebuffer returns the color buffer of the last frame.
func (r *Renderer) Framebuffer() *Framebuffer { return r.fb }

// Depth returns the reciprocal depth buffer of the last frame.
func (r *Renderer) Depth() *DepthBuffer { return r.depth }

// RenderFrame clears both buffers and draws scene as seen by cam.
//
// Per triangle, in mesh order: world and view transform, near-plane clip,
// projection with UV premultiplied by 1/z, mapping to pixel space with X and
// Y flipped, clipping against the four screen edges, then fill. There is no
// sorting and no back-face culling; occlusion is the depth buffer's job.
func (r *Renderer) RenderFrame(scene Scene, cam Camera) FrameStats {
	r.fb.Reset()
	r.depth.Clear()

	var stats FrameStats
	if scene.Mesh == nil {
		return stats
	}

	mode := scene.Mode
	if mode == ModeTextured && scene.Texture == nil {
		mode = ModeFlat
	}

	worldView := scene.World.Mul(cam.View())
	proj := cam.Projection()
	near := NearPlane(cam.NearClip)
	edges := ScreenPlanes(r.fb.Width, r.fb.Height)

	stats.Triangles = scene.Mesh.TriangleCount()
	for i := range stats.Triangles {
		pos, uv := scene.Mesh.GetTriangle(i)

		var tri Triangle
		for k := range 3 {
			tri.V[k] = worldView.MulVec4(pos[k].Point())
			tri.UV[k] = uv[k].UVW()
		}

		n, clipped := ClipTriangle(near, tri)
		if n == 0 {
			stats.NearDropped++
			continue
		}
		stats.NearOut += n

		for _, ct := range clipped[:n] {
			r.project(&ct, proj)

			r.one[0] = ct
			for _, st := range clipAll(edges[:], r.one[:], &r.scratch) {
				r.fill(scene, mode, &st, &stats)
			}
		}
	}

	if scene.Outline {
		Outline(r.fb)
	}
	if scene.Overlay != nil {
		Overlay(r.fb, scene.Overlay)
	}

	Logger().Debug("frame rendered", "stats", stats)
	return stats
}

// project maps a view-space triangle to pixel space. MulVec4 has already
// divided x, y and z by w; w itself (view depth) is folded into the UVs and
// then reset to 1.
func (r *Renderer) project(tri *Triangle, proj math3d.Mat4) {
	halfW := 0.5 * float64(r.fb.Width)
	halfH := 0.5 * float64(r.fb.Height)

	for k := range 3 {
		p := proj.MulVec4(tri.V[k])

		tri.UV[k].U /= p.W
		tri.UV[k].V /= p.W
		tri.UV[k].W = 1 / p.W

		tri.V[k] = math3d.Vec4{
			X: (-p.X + 1) * halfW,
			Y: (-p.Y + 1) * halfH,
			Z: p.Z,
			W: 1,
		}
	}
}

func (r *Renderer) fill(scene Scene, mode RenderMode, tri *Triangle, stats *FrameStats) {
	sv := toScreenVertices(tri, r.fb.Width, r.fb.Height)
	stats.Rasterized++

	switch mode {
	case ModeWireframe:
		DrawTriangleEdges(r.fb, sv, scene.Color)
	case ModeFlat:
		stats.Pixels += FillTriangle(r.fb, sv, scene.Color)
	default:
		stats.Pixels += TextureTriangle(r.fb, r.depth, sv, scene.Texture)
	}
}
