package render

import (
	"math"

	"github.com/taigrr/sftrender/pkg/math3d"
)

// Camera holds the numeric inputs of the view and projection transforms.
// It is a plain value: matrices are rebuilt from it every frame and nothing
// is cached.
type Camera struct {
	Position math3d.Vec4
	Target   math3d.Vec4
	Up       math3d.Vec4

	FOV    float64 // Full field of view in degrees
	Aspect float64 // Height / Width
	Near   float64 // Projection near distance
	Far    float64 // Projection far distance

	// NearClip is the view-space z of the near clipping plane. Geometry in
	// front of it is cut before projection.
	NearClip float64
}

// DefaultCamera returns a camera at the origin looking down +Z with a
// 90 degree field of view, sized for a width×height target.
func DefaultCamera(width, height int) Camera {
	aspect := 1.0
	if width > 0 {
		aspect = float64(height) / float64(width)
	}
	return Camera{
		Position: math3d.P4(0, 0, 0),
		Target:   math3d.P4(0, 0, 1),
		Up:       math3d.P4(0, 1, 0),
		FOV:      90,
		Aspect:   aspect,
		Near:     0.5,
		Far:      1000,
		NearClip: 0.01,
	}
}

// View returns the world→view matrix.
func (c Camera) View() math3d.Mat4 {
	return math3d.InverseTransform(math3d.PointAt(c.Position, c.Target, c.Up))
}

// Projection returns the view→clip matrix.
func (c Camera) Projection() math3d.Mat4 {
	return math3d.Projection(c.FOV, c.Aspect, c.Near, c.Far)
}

// Direction returns the unit look direction.
func (c Camera) Direction() math3d.Vec4 {
	return c.Target.Sub(c.Position).Normalize()
}

// Move translates the camera and its target by d.
func (c Camera) Move(d math3d.Vec3) Camera {
	off := math3d.V4(d.X, d.Y, d.Z, 0)
	c.Position = c.Position.Add(off)
	c.Target = c.Target.Add(off)
	return c
}

// MoveForward moves along the look direction projected onto the XZ plane.
func (c Camera) MoveForward(dist float64) Camera {
	dir := c.Direction()
	dir.Y = 0
	if dir.Dot(dir) == 0 {
		return c
	}
	dir = dir.NormalizeFast().Scale(dist)
	return c.Move(math3d.V3(dir.X, dir.Y, dir.Z))
}

// Turn rotates the look direction around the world Y axis by yaw radians,
// keeping the target at unit distance.
func (c Camera) Turn(yaw float64) Camera {
	dir := c.Target.Sub(c.Position)
	sin, cos := math.Sincos(yaw)
	dir = math3d.V4(dir.X*cos+dir.Z*sin, dir.Y, -dir.X*sin+dir.Z*cos, 0)
	c.Target = c.Position.Add(dir.NormalizeFast())
	return c
}

// Pose places a model in the world. The world matrix applies, in order,
// Offset, yaw around Y, pitch around X, then Position.
type Pose struct {
	Offset   math3d.Vec3
	Yaw      float64
	Pitch    float64
	Position math3d.Vec3
}

// DefaultOffset lowers a model so rotations pivot slightly above its origin.
var DefaultOffset = math3d.V3(0, -1.25, 0)

// Matrix returns Translate(Offset) × RotateY(Yaw) × RotateX(Pitch) × Translate(Position).
func (p Pose) Matrix() math3d.Mat4 {
	return math3d.Translate(p.Offset).
		Mul(math3d.RotateY(p.Yaw)).
		Mul(math3d.RotateX(p.Pitch)).
		Mul(math3d.Translate(p.Position))
}

// AutoRotate returns the idle spin angles for a tick count: a steady yaw and
// a slow pitch wobble tilted toward the camera.
func AutoRotate(tick uint32) (pitch, yaw float64) {
	t := float64(tick)
	yaw = t * 0.006
	pitch = math.Cos(t*0.013)*math.Pi*0.1 - math.Pi*0.2
	return pitch, yaw
}
