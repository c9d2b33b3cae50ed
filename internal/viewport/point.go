// Package viewport maps local viewport coordinates onto the remote framebuffer.
package viewport

import "math"

// Point is a position in either viewport or framebuffer space.
type Point struct {
	X float32
	Y float32
}

// Add returns p translated by (dx,dy).
func (p Point) Add(dx, dy float32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float32 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	return float32(math.Hypot(dx, dy))
}

// clamp bounds v to [lo,hi].
func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
