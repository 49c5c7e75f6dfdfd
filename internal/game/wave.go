package game

import (
	"math"

	"github.com/tomz197/invaders/internal/object"
)

// Director owns formation size, formation velocity and the wave counter.
type Director struct {
	Columns   int
	Rows      int
	VelocityX float64 // Shared by every alien; sign is the travel direction
	Number    int     // 1-based wave number
}

// NewDirector returns the director for the first wave.
func NewDirector() Director {
	return Director{
		Columns:   InitialAlienColumns,
		Rows:      InitialAlienRows,
		VelocityX: InitialAlienSpeed,
		Number:    1,
	}
}

// Spawn lays out a fresh formation for the current wave.
func (d *Director) Spawn() []object.Alien {
	return object.NewFormation(d.Columns, d.Rows, AlienStartX, AlienStartY, AlienWidth, AlienHeight)
}

// Advance moves the formation sideways by VelocityX × scale. When a live
// alien reaches the wall it is travelling toward, the formation reverses,
// steps back by twice the new velocity and drops one alien height.
// It reports whether the formation bounced.
func (d *Director) Advance(aliens []object.Alien, scale float64) bool {
	dx := d.VelocityX * scale
	hit := false
	for i := range aliens {
		a := &aliens[i]
		if !a.Alive {
			continue
		}
		a.X += dx
		if b := a.Bounds(); (d.VelocityX > 0 && b.Right() >= BoardWidth) || (d.VelocityX < 0 && b.X <= 0) {
			hit = true
		}
	}
	if !hit {
		return false
	}

	d.VelocityX = -d.VelocityX
	for i := range aliens {
		aliens[i].X += 2 * d.VelocityX
		aliens[i].Y += AlienHeight
	}
	return true
}

// Escalate grows the next formation by one column and one row (capped) and
// speeds it up.
func (d *Director) Escalate() {
	d.Columns = min(d.Columns+1, MaxAlienColumns)
	d.Rows = min(d.Rows+1, MaxAlienRows)
	d.VelocityX = math.Copysign(math.Abs(d.VelocityX)+AlienSpeedStep, d.VelocityX)
	d.Number++
}
