package game

import "time"

// Game configuration constants.
// Board geometry, entity sizes and wave scaling are fixed for this game.

// Board
const (
	TileSize    = 32
	Rows        = 16
	Columns     = 16
	BoardWidth  = TileSize * Columns
	BoardHeight = TileSize * Rows
)

// Ship
const (
	ShipWidth  = TileSize * 2
	ShipHeight = TileSize
	ShipStartX = TileSize*Columns/2 - TileSize
	ShipStartY = TileSize*Rows - TileSize*2

	ShipKeyStep  = TileSize     // One tile per key press
	ShipAxisStep = TileSize / 2 // Binary fallback step per 60Hz frame
	MaxAxisSpeed = 220.0        // px/s at |AxisX| = 1
	AxisEpsilon  = 0.001        // |AxisX| at or below this uses the binary flags
)

// Aliens
const (
	AlienWidth  = TileSize * 2
	AlienHeight = TileSize
	AlienStartX = TileSize
	AlienStartY = TileSize

	InitialAlienColumns = 3
	InitialAlienRows    = 2
	InitialAlienSpeed   = 1.0
	AlienSpeedStep      = 0.2 // Added to the speed magnitude per cleared wave

	MaxAlienColumns = Columns/2 - 2
	MaxAlienRows    = Rows - 4
)

// Bullets
const (
	BulletWidth     = TileSize / 8
	BulletHeight    = TileSize / 2
	BulletVelocityY = -10.0 // px per 60Hz frame

	MouthFireCooldown = 150 * time.Millisecond
)

// Scoring
const (
	ScorePerAlien = 100
)

// Timing
const (
	ReferenceFPS = 60
	MaxFrameTime = 50 * time.Millisecond
)
