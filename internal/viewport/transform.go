// Package viewport maps local viewport coordinates onto the remote framebuffer.
package viewport

import "sync/atomic"

const (
	// DefaultMinZoom is the smallest zoom factor applied on top of the base scale.
	DefaultMinZoom = 0.5
	// DefaultMaxZoom is the largest zoom factor applied on top of the base scale.
	DefaultMaxZoom = 5.0
)

// Snapshot is an immutable copy of the transform state.
type Snapshot struct {
	BaseScale float32
	ZoomScale float32
	PanX      float32
	PanY      float32
	FbWidth   float32
	FbHeight  float32
	VpWidth   float32
	VpHeight  float32
}

// Scale returns the effective framebuffer-to-viewport scale.
func (s Snapshot) Scale() float32 {
	return s.BaseScale * s.ZoomScale
}

// ToFramebuffer converts a viewport point into framebuffer coordinates.
// ok is false when the point lands outside [0,fbW) x [0,fbH).
func (s Snapshot) ToFramebuffer(p Point) (Point, bool) {
	scale := s.Scale()
	if scale <= 0 || s.FbWidth <= 0 || s.FbHeight <= 0 {
		return Point{}, false
	}
	fb := Point{X: (p.X - s.PanX) / scale, Y: (p.Y - s.PanY) / scale}
	if fb.X < 0 || fb.Y < 0 || fb.X >= s.FbWidth || fb.Y >= s.FbHeight {
		return Point{}, false
	}
	return fb, true
}

// Transform owns the zoom/pan state. It has a single writer (the input
// goroutine); readers on other goroutines call Snapshot, which returns the
// last published state.
type Transform struct {
	state     Snapshot
	minZoom   float32
	maxZoom   float32
	published atomic.Pointer[Snapshot]
	onChange  func(Snapshot)
}

// New returns a transform with zoom bounded to [minZoom,maxZoom].
// Invalid bounds fall back to the defaults.
func New(minZoom, maxZoom float32) *Transform {
	if minZoom <= 0 {
		minZoom = DefaultMinZoom
	}
	if maxZoom < minZoom {
		maxZoom = minZoom
	}
	t := &Transform{
		state:   Snapshot{BaseScale: 1, ZoomScale: 1},
		minZoom: minZoom,
		maxZoom: maxZoom,
	}
	t.state.ZoomScale = clamp(1, minZoom, maxZoom)
	t.publish()
	return t
}

// SetOnChange registers a callback invoked after every mutation, typically a
// render request. It runs on the writer goroutine.
func (t *Transform) SetOnChange(fn func(Snapshot)) {
	t.onChange = fn
}

// Snapshot returns the last published state. Safe for concurrent readers.
func (t *Transform) Snapshot() Snapshot {
	return *t.published.Load()
}

// SetFramebufferSize updates the remote framebuffer dimensions.
func (t *Transform) SetFramebufferSize(w, h float32) {
	t.state.FbWidth = w
	t.state.FbHeight = h
	t.recompute()
}

// SetViewportSize updates the local viewport dimensions.
func (t *Transform) SetViewportSize(w, h float32) {
	t.state.VpWidth = w
	t.state.VpHeight = h
	t.recompute()
}

// UpdateZoom multiplies the zoom by factor, clamps it, and returns the factor
// that was actually applied.
func (t *Transform) UpdateZoom(factor float32) float32 {
	if factor <= 0 {
		return 1
	}
	old := t.state.ZoomScale
	t.state.ZoomScale = clamp(old*factor, t.minZoom, t.maxZoom)
	t.coercePan()
	t.publish()
	return t.state.ZoomScale / old
}

// ZoomAt zooms around the viewport focus point (fx,fy), keeping the
// framebuffer pixel under the focus stationary where pan bounds allow.
func (t *Transform) ZoomAt(factor, fx, fy float32) float32 {
	if factor <= 0 {
		return 1
	}
	old := t.state.ZoomScale
	t.state.ZoomScale = clamp(old*factor, t.minZoom, t.maxZoom)
	applied := t.state.ZoomScale / old
	if applied == 1 {
		return applied
	}
	// The focus is solved against the pan before coercion.
	t.state.PanX = fx - (fx-t.state.PanX)*applied
	t.state.PanY = fy - (fy-t.state.PanY)*applied
	t.coercePan()
	t.publish()
	return applied
}

// ResetZoom returns to a zoom of 1 (or the nearest bound).
func (t *Transform) ResetZoom() {
	t.state.ZoomScale = clamp(1, t.minZoom, t.maxZoom)
	t.coercePan()
	t.publish()
}

// Pan shifts the framebuffer by (dx,dy) viewport pixels, subject to coercion.
func (t *Transform) Pan(dx, dy float32) {
	t.state.PanX += dx
	t.state.PanY += dy
	t.coercePan()
	t.publish()
}

// ToFramebuffer converts a viewport point using the writer's current state.
func (t *Transform) ToFramebuffer(p Point) (Point, bool) {
	return t.state.ToFramebuffer(p)
}

// recompute derives the base scale from current sizes and re-coerces state.
func (t *Transform) recompute() {
	t.state.BaseScale = baseScale(t.state)
	t.coercePan()
	t.publish()
}

// baseScale fits the framebuffer assuming the longer viewport side is horizontal.
func baseScale(s Snapshot) float32 {
	if s.FbWidth <= 0 || s.FbHeight <= 0 || s.VpWidth <= 0 || s.VpHeight <= 0 {
		return 1
	}
	long := max(s.VpWidth, s.VpHeight)
	short := min(s.VpWidth, s.VpHeight)
	return min(long/s.FbWidth, short/s.FbHeight)
}

// coercePan centers a framebuffer smaller than the viewport and keeps a larger
// one flush against every edge.
func (t *Transform) coercePan() {
	scale := t.state.Scale()
	t.state.PanX = coerceAxis(t.state.PanX, t.state.VpWidth, t.state.FbWidth*scale)
	t.state.PanY = coerceAxis(t.state.PanY, t.state.VpHeight, t.state.FbHeight*scale)
}

// coerceAxis applies the pan rule for a single axis.
func coerceAxis(pan, viewport, scaled float32) float32 {
	diff := viewport - scaled
	if diff >= 0 {
		return diff / 2
	}
	return clamp(pan, diff, 0)
}

// publish stores a copy of the state for readers and notifies the listener.
func (t *Transform) publish() {
	snap := t.state
	t.published.Store(&snap)
	if t.onChange != nil {
		t.onChange(snap)
	}
}
