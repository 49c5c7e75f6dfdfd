// Package object defines the ship, alien formation and bullet entities.
package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// DrawContext provides drawing resources for entities.
type DrawContext struct {
	Canvas *draw.Canvas
}

// Drawable is an entity that knows how to draw itself.
type Drawable interface {
	Draw(ctx DrawContext)
}

// Body is implemented by anything with a collision rectangle.
type Body interface {
	Bounds() physics.Rect
}

// Overlaps reports whether two bodies collide.
func Overlaps(a, b Body) bool {
	return physics.Collide(a.Bounds(), b.Bounds())
}
