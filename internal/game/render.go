package game

import (
	"github.com/tomz197/invaders/internal/object"
)

// Draw renders the formation, bullets and ship onto the canvas. The caller
// clears the canvas and draws text overlays.
func (g *Game) Draw(ctx object.DrawContext) {
	g.drawables = g.drawables[:0]
	for i := range g.Aliens {
		g.drawables = append(g.drawables, &g.Aliens[i])
	}
	for i := 0; i < g.Bullets.Len(); i++ {
		g.drawables = append(g.drawables, g.Bullets.At(i))
	}
	g.drawables = append(g.drawables, &g.Ship)

	for _, d := range g.drawables {
		d.Draw(ctx)
	}
}
