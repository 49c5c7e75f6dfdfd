package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomz197/invaders/internal/object"
)

func TestDirectorAdvanceMovesLiveAliens(t *testing.T) {
	d := NewDirector()
	aliens := d.Spawn()
	aliens[1].Alive = false

	bounced := d.Advance(aliens, 2)
	assert.False(t, bounced)
	assert.Equal(t, 34.0, aliens[0].X)
	assert.Equal(t, 32.0, aliens[1].X)
}

func TestDirectorBounceOnRightWall(t *testing.T) {
	d := NewDirector()
	aliens := []object.Alien{
		{X: BoardWidth - AlienWidth - 0.5, Y: 32, Width: AlienWidth, Height: AlienHeight, Alive: true},
		{X: 100, Y: 64, Width: AlienWidth, Height: AlienHeight, Alive: true},
	}

	assert.True(t, d.Advance(aliens, 1))
	assert.Equal(t, -1.0, d.VelocityX)
	assert.Equal(t, float64(BoardWidth-AlienWidth)+0.5-2, aliens[0].X)
	assert.Equal(t, 99.0, aliens[1].X)
	assert.Equal(t, 64.0, aliens[0].Y)
	assert.Equal(t, 96.0, aliens[1].Y)

	// Moving away from the wall does not bounce again.
	assert.False(t, d.Advance(aliens, 1))
	assert.Equal(t, -1.0, d.VelocityX)
}

func TestDirectorBounceOnLeftWall(t *testing.T) {
	d := Director{VelocityX: -1.4}
	aliens := []object.Alien{{X: 1, Y: 0, Width: AlienWidth, Height: AlienHeight, Alive: true}}

	assert.True(t, d.Advance(aliens, 1))
	assert.Equal(t, 1.4, d.VelocityX)
	assert.InDelta(t, 1-1.4+2.8, aliens[0].X, 1e-9)
	assert.Equal(t, float64(AlienHeight), aliens[0].Y)
}

func TestDirectorIgnoresDeadAliensAtWall(t *testing.T) {
	d := NewDirector()
	aliens := []object.Alien{{X: BoardWidth - AlienWidth, Width: AlienWidth, Height: AlienHeight}}
	assert.False(t, d.Advance(aliens, 1))
	assert.Equal(t, 1.0, d.VelocityX)
}

func TestDirectorEscalateCaps(t *testing.T) {
	d := NewDirector()
	d.Escalate()
	assert.Equal(t, 4, d.Columns)
	assert.Equal(t, 3, d.Rows)
	assert.InDelta(t, 1.2, d.VelocityX, 1e-9)
	assert.Equal(t, 2, d.Number)

	for i := 0; i < 20; i++ {
		d.Escalate()
	}
	assert.Equal(t, 6, d.Columns)
	assert.Equal(t, 12, d.Rows)
	assert.Len(t, d.Spawn(), 72)
}

func TestDirectorEscalateKeepsDirection(t *testing.T) {
	d := Director{VelocityX: -1}
	d.Escalate()
	assert.InDelta(t, -1.2, d.VelocityX, 1e-9)
}
