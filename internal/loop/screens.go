package loop

import (
	"fmt"

	"github.com/tomz197/invaders/internal/control"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
)

// drawUI draws the text overlay for the current game phase.
func drawUI(s *Session, fw *draw.FrameWriter) {
	g := s.game
	width := s.layout.cols
	center := s.layout.rows / 2

	switch g.State {
	case game.StateStart:
		drawStartScreen(fw, width, center)
	case game.StatePlaying:
		drawPlayingHUD(g, fw, width)
	case game.StateGameOver:
		drawPlayingHUD(g, fw, width)
		drawGameOverScreen(g, fw, width, center)
	}

	if s.debug {
		fw.WriteAt(1, 2, debugLine(s.controls.Load(), s.opts.Status))
	}
}

// drawStartScreen draws the title screen.
func drawStartScreen(fw *draw.FrameWriter, width, center int) {
	fw.WriteCentered(width, center-2, "S P A C E   I N V A D E R S")
	fw.WriteCentered(width, center+1, "Press SPACE to Start")
	fw.WriteCentered(width, center+3, "Arrows or A/D move, SPACE shoots")
	fw.WriteCentered(width, center+4, "Tilt your head to steer, open your mouth to fire")
	fw.WriteCentered(width, center+5, "T toggles status, Q quits")
}

// drawPlayingHUD draws the score and wave number.
func drawPlayingHUD(g *game.Game, fw *draw.FrameWriter, width int) {
	fw.WriteAt(2, 1, fmt.Sprintf("Score:%d", g.Score))

	wave := fmt.Sprintf("Wave %d", g.Director.Number)
	fw.WriteAt(max(width-len(wave), 1), 1, wave)
}

// drawGameOverScreen draws the final score over the frozen board.
func drawGameOverScreen(g *game.Game, fw *draw.FrameWriter, width, center int) {
	fw.WriteCentered(width, center-1, "GAME OVER")
	fw.WriteCentered(width, center+1, fmt.Sprintf("Final score: %d", g.Score))
	fw.WriteCentered(width, center+3, "Press ENTER to play again, Q to quit")
}

// debugLine shows the hands-free command the simulation is reading.
func debugLine(cmd control.Command, status func() string) string {
	dir := "·"
	switch {
	case cmd.Left:
		dir = "←"
	case cmd.Right:
		dir = "→"
	}
	fire := "✗"
	if cmd.MouthOpen {
		fire = "✓"
	}
	line := fmt.Sprintf("L/R: %s  Fire: %s  axis=%+.2f", dir, fire, cmd.AxisX)
	if status != nil {
		if extra := status(); extra != "" {
			line += "  " + extra
		}
	}
	return line
}
