// Package physics provides axis-aligned geometry tests for the climbing games.
package physics

// Rect is an axis-aligned rectangle identified by its center and full extents.
// Y grows downward (screen coordinates), so Top() < Bottom().
type Rect struct {
	X, Y float64 // Center position
	W, H float64 // Full width and height
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X - r.W/2 }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W/2 }

// Top returns the y coordinate of the upper edge (smaller y is higher).
func (r Rect) Top() float64 { return r.Y - r.H/2 }

// Bottom returns the y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H/2 }

// Overlaps reports whether two rectangles intersect.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && r.Right() > o.Left() &&
		r.Top() < o.Bottom() && r.Bottom() > o.Top()
}

// OverlapsX reports whether the horizontal extents of two rectangles intersect.
func (r Rect) OverlapsX(o Rect) bool {
	return r.Left() < o.Right() && r.Right() > o.Left()
}

// Inflate returns a copy of the rectangle grown by pad on every side.
func (r Rect) Inflate(pad float64) Rect {
	return Rect{X: r.X, Y: r.Y, W: r.W + 2*pad, H: r.H + 2*pad}
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// WithinRadius checks if two points are closer than radius.
func WithinRadius(x1, y1, x2, y2, radius float64) bool {
	return DistanceSquared(x1, y1, x2, y2) < radius*radius
}

// InBand reports whether v lies in [lo, hi].
func InBand(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
