// Package accel implements pointer velocity tracking and the acceleration
// curve used for relative (touchpad-style) pointer control.
package accel

import "time"

// DefaultHorizon is the rolling window used by NewVelocityTracker.
const DefaultHorizon = time.Second

type sample struct {
	x, y float32
	t    time.Time
}

// VelocityTracker estimates pointer velocity over a rolling time window.
type VelocityTracker struct {
	horizon time.Duration
	samples []sample
}

// NewVelocityTracker returns a tracker keeping samples for the given horizon.
func NewVelocityTracker(horizon time.Duration) *VelocityTracker {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &VelocityTracker{horizon: horizon}
}

// AddSample records a pointer position at time t and drops stale samples.
func (v *VelocityTracker) AddSample(x, y float32, t time.Time) {
	v.samples = append(v.samples, sample{x: x, y: y, t: t})
	cutoff := t.Add(-v.horizon)
	drop := 0
	for drop < len(v.samples)-1 && v.samples[drop].t.Before(cutoff) {
		drop++
	}
	if drop > 0 {
		v.samples = append(v.samples[:0], v.samples[drop:]...)
	}
}

// Velocity returns the average velocity in pixels per second over the window.
func (v *VelocityTracker) Velocity() (vx, vy float32) {
	if len(v.samples) < 2 {
		return 0, 0
	}
	first := v.samples[0]
	last := v.samples[len(v.samples)-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	return float32(float64(last.x-first.x) / dt), float32(float64(last.y-first.y) / dt)
}

// Reset forgets all samples.
func (v *VelocityTracker) Reset() {
	v.samples = v.samples[:0]
}
