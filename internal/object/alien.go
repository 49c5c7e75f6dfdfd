package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Alien is one member of the formation. Dead aliens stay in the formation
// slice so indices remain stable; they no longer move, collide or draw.
type Alien struct {
	X, Y          float64
	Width, Height float64
	Alive         bool
}

// Bounds returns the collision rectangle.
func (a *Alien) Bounds() physics.Rect {
	return physics.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// NewFormation lays out a columns x rows grid of live aliens starting at
// (originX, originY). Aliens are ordered column-major.
func NewFormation(columns, rows int, originX, originY, width, height float64) []Alien {
	aliens := make([]Alien, 0, columns*rows)
	for c := 0; c < columns; c++ {
		for r := 0; r < rows; r++ {
			aliens = append(aliens, Alien{
				X:      originX + float64(c)*width,
				Y:      originY + float64(r)*height,
				Width:  width,
				Height: height,
				Alive:  true,
			})
		}
	}
	return aliens
}

// Draw renders a live alien as a squat body with two legs.
func (a *Alien) Draw(ctx DrawContext) {
	if !a.Alive {
		return
	}
	w, h := a.Width, a.Height
	ctx.Canvas.DrawPolygon([]draw.Point{
		{X: a.X + w*0.2, Y: a.Y + h*0.15},
		{X: a.X + w*0.8, Y: a.Y + h*0.15},
		{X: a.X + w*0.95, Y: a.Y + h*0.6},
		{X: a.X + w*0.05, Y: a.Y + h*0.6},
	}, true)
	ctx.Canvas.FillRect(a.X+w*0.15, a.Y+h*0.6, w*0.12, h*0.3)
	ctx.Canvas.FillRect(a.X+w*0.73, a.Y+h*0.6, w*0.12, h*0.3)
}
