package main

import (
	"github.com/charmbracelet/harmonica"
)

// RotationAxis tracks an angle offset and its angular velocity. The
// velocity decays toward zero on a critically damped spring, so a flick
// keeps spinning for a moment and then settles.
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // spring state for Velocity
}

// NewRotationAxis creates an axis whose spring is stepped tps times per second.
func NewRotationAxis(tps int) RotationAxis {
	return RotationAxis{
		velSpring: harmonica.NewSpring(harmonica.FPS(tps), 4.0, 1.0),
	}
}

// Update advances the axis by one tick.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// RotationState is the user-driven spin layered on top of the idle
// animation.
type RotationState struct {
	Pitch, Yaw RotationAxis
	tps        int
}

// NewRotationState creates a resting rotation stepped tps times per second.
func NewRotationState(tps int) *RotationState {
	r := &RotationState{tps: tps}
	r.Reset()
	return r
}

// Update advances both axes by one tick.
func (r *RotationState) Update() {
	r.Pitch.Update()
	r.Yaw.Update()
}

// ApplyImpulse adds angular velocity, in radians per tick.
func (r *RotationState) ApplyImpulse(pitch, yaw float64) {
	r.Pitch.Velocity += pitch
	r.Yaw.Velocity += yaw
}

// Reset stops the spin and returns both offsets to zero.
func (r *RotationState) Reset() {
	r.Pitch = NewRotationAxis(r.tps)
	r.Yaw = NewRotationAxis(r.tps)
}
