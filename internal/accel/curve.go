// Package accel implements pointer velocity tracking and the acceleration
// curve used for relative (touchpad-style) pointer control.
package accel

import "math"

const (
	mmPerInch = 25.4

	// Baseline is the 1:1 tracking factor between the two thresholds.
	Baseline = 1.0
)

// Curve maps pointer speed (mm/s) to a multiplicative speed factor.
type Curve struct {
	// MinFactor is the factor at zero speed.
	MinFactor float32
	// MaxFactor caps the quadratic growth above FastThreshold.
	MaxFactor float32
	// SlowThreshold (T1) ends the precision ramp, in mm/s.
	SlowThreshold float32
	// FastThreshold (T2) starts quadratic growth, in mm/s.
	FastThreshold float32
	// Growth is the quadratic coefficient applied above FastThreshold.
	Growth float32
	// DampenRate scales the zoom-proportional reduction.
	DampenRate float32
}

// DefaultCurve returns the curve used by the dispatcher.
func DefaultCurve() Curve {
	return Curve{
		MinFactor:     0.4,
		MaxFactor:     4,
		SlowThreshold: 40,
		FastThreshold: 150,
		Growth:        3.0 / (400 * 400),
		DampenRate:    0.15,
	}
}

// Factor returns the speed factor for a pointer speed v (pixels/s) on a
// display with the given dpi. Zoomed-in views with video enabled are
// dampened in proportion to (zoomScale-1).
func (c Curve) Factor(v, dpi, zoomScale float32, videoDisabled bool) float32 {
	f := c.base(speedMM(v, dpi))
	if zoomScale <= 1 || videoDisabled {
		return f
	}
	damp := c.DampenRate * (zoomScale - 1) * f
	if damp > f {
		damp = f
	}
	return f - damp
}

// base evaluates the undampened three-segment profile.
func (c Curve) base(mm float32) float32 {
	switch {
	case mm <= 0:
		return c.MinFactor
	case mm < c.SlowThreshold:
		return c.MinFactor + (Baseline-c.MinFactor)*(mm/c.SlowThreshold)
	case mm <= c.FastThreshold:
		return Baseline
	default:
		d := mm - c.FastThreshold
		f := Baseline + c.Growth*d*d
		if f > c.MaxFactor {
			return c.MaxFactor
		}
		return f
	}
}

// speedMM converts |v| in pixels/s into mm/s.
func speedMM(v, dpi float32) float32 {
	if dpi <= 0 {
		dpi = 160
	}
	return float32(math.Abs(float64(v))) / dpi * mmPerInch
}

// Speed returns the magnitude of a velocity vector.
func Speed(vx, vy float32) float32 {
	return float32(math.Hypot(float64(vx), float64(vy)))
}
