// Package camera provides an orbit camera around the galaxy center.
package camera

import "math"

// Orbit circles a fixed target. Angles are in radians.
// Input sets the goal angles and distance; Update eases toward them.
type Orbit struct {
	// Current state
	Yaw, Pitch float64
	Distance   float64

	// Goal state (set by input)
	GoalYaw, GoalPitch float64
	GoalDistance       float64

	// Fraction of the remaining distance to the goal covered per 1/60s.
	// 1 disables damping.
	Damping float64

	// Zoom constraints
	MinDistance, MaxDistance float64

	home struct{ yaw, pitch, distance float64 }
}

// maxPitch keeps the camera off the poles where the up vector degenerates.
const maxPitch = math.Pi/2 - 0.01

// New creates an orbit camera at the given angles (degrees) and distance.
func New(yawDeg, pitchDeg, distance, minDistance, maxDistance, damping float64) *Orbit {
	o := &Orbit{
		MinDistance: minDistance,
		MaxDistance: maxDistance,
		Damping:     clamp(damping, 0.001, 1),
	}
	o.Yaw = yawDeg * math.Pi / 180
	o.Pitch = clamp(pitchDeg*math.Pi/180, -maxPitch, maxPitch)
	o.Distance = clamp(distance, minDistance, maxDistance)
	o.GoalYaw, o.GoalPitch, o.GoalDistance = o.Yaw, o.Pitch, o.Distance
	o.home.yaw, o.home.pitch, o.home.distance = o.Yaw, o.Pitch, o.Distance
	return o
}

// Rotate moves the goal by the given angle deltas.
func (o *Orbit) Rotate(dYaw, dPitch float64) {
	o.GoalYaw += dYaw
	o.GoalPitch = clamp(o.GoalPitch+dPitch, -maxPitch, maxPitch)
}

// ZoomBy multiplies the goal distance by factor, clamped to min/max.
func (o *Orbit) ZoomBy(factor float64) {
	o.GoalDistance = clamp(o.GoalDistance*factor, o.MinDistance, o.MaxDistance)
}

// Update eases the current state toward the goal over dt seconds.
func (o *Orbit) Update(dt float64) {
	// Frame-rate independent: the per-tick fraction is defined at 60 fps.
	k := 1 - math.Pow(1-o.Damping, dt*60)
	o.Yaw += (o.GoalYaw - o.Yaw) * k
	o.Pitch += (o.GoalPitch - o.Pitch) * k
	o.Distance += (o.GoalDistance - o.Distance) * k
}

// Eye returns the camera position relative to the target (Y up).
func (o *Orbit) Eye() (x, y, z float64) {
	cp := math.Cos(o.Pitch)
	x = o.Distance * cp * math.Cos(o.Yaw)
	y = o.Distance * math.Sin(o.Pitch)
	z = o.Distance * cp * math.Sin(o.Yaw)
	return x, y, z
}

// Reset returns the camera to its initial position.
func (o *Orbit) Reset() {
	o.Yaw, o.Pitch, o.Distance = o.home.yaw, o.home.pitch, o.home.distance
	o.GoalYaw, o.GoalPitch, o.GoalDistance = o.Yaw, o.Pitch, o.Distance
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
