package object

import (
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/physics"
)

// Ship is the player-controlled cannon at the bottom of the board.
type Ship struct {
	X, Y          float64 // Top-left corner
	Width, Height float64
}

// NewShip creates a ship at the given position.
func NewShip(x, y, width, height float64) Ship {
	return Ship{X: x, Y: y, Width: width, Height: height}
}

// ClampX keeps the ship fully inside [0, boardWidth].
func (s *Ship) ClampX(boardWidth float64) {
	s.X = physics.Clamp(s.X, 0, boardWidth-s.Width)
}

// Muzzle returns where new bullets appear: slightly left of center so a
// bullet of width/16 is visually centered, on the ship's top edge.
func (s *Ship) Muzzle() (x, y float64) {
	return s.X + s.Width*15/32, s.Y
}

// Draw renders the ship as a cannon on a wide base.
func (s *Ship) Draw(ctx DrawContext) {
	w, h := s.Width, s.Height
	ctx.Canvas.DrawPolygon([]draw.Point{
		{X: s.X, Y: s.Y + h},
		{X: s.X, Y: s.Y + h*0.55},
		{X: s.X + w*0.4, Y: s.Y + h*0.4},
		{X: s.X + w*0.45, Y: s.Y},
		{X: s.X + w*0.55, Y: s.Y},
		{X: s.X + w*0.6, Y: s.Y + h*0.4},
		{X: s.X + w, Y: s.Y + h*0.55},
		{X: s.X + w, Y: s.Y + h},
	}, true)
}
