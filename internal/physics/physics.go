// Package physics provides collision detection and clamping utilities.
package physics

// Rect is an axis-aligned rectangle in board pixel coordinates.
// X and Y address the top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Collide checks if two rectangles overlap.
// Intervals are open: rectangles that only share an edge do not collide.
func Collide(a, b Rect) bool {
	return a.X < b.Right() && // a's left edge is left of b's right edge
		a.Right() > b.X && // a's right edge is right of b's left edge
		a.Y < b.Bottom() && // a's top is above b's bottom
		a.Bottom() > b.Y // a's bottom is below b's top
}

// Clamp limits v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
