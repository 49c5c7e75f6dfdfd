// Package game holds the invaders simulation: one explicit Game value owns
// the ship, the formation, the bullets and the wave progression, and Tick
// advances all of it by one frame.
package game

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/control"
	"github.com/tomz197/invaders/internal/object"
)

// State is the current game phase.
type State int

const (
	StateStart    State = iota // Title screen
	StatePlaying               // Active gameplay
	StateGameOver              // Formation reached the ship; terminal
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "start"
	}
}

// EventType identifies something that happened during a tick.
type EventType int

const (
	EventShot EventType = iota
	EventKill
	EventWaveCleared
	EventGameOver
)

// String returns the event name for logs.
func (e EventType) String() string {
	switch e {
	case EventShot:
		return "shot"
	case EventKill:
		return "kill"
	case EventWaveCleared:
		return "wave cleared"
	case EventGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Event is emitted by the simulation for audio and logging.
type Event struct {
	Type  EventType
	Score int
	Wave  int
}

// Game is the simulation context. It is driven from a single goroutine;
// only the control reader is shared with other goroutines.
type Game struct {
	ID       string
	State    State
	Ship     object.Ship
	Aliens   []object.Alien
	Bullets  object.BulletQueue
	Director Director
	Alive    int // Live aliens in the current wave
	Score    int

	controls control.Reader
	lastTime time.Time
	lastShot time.Time
	events   []Event
	log      *zap.SugaredLogger

	drawables []object.Drawable // Reused by Draw
}

// New creates a game on the title screen. controls may be nil for
// keyboard-only play.
func New(controls control.Reader, log *zap.SugaredLogger) *Game {
	if controls == nil {
		controls = control.NewChannel()
	}
	id := uuid.NewString()
	g := &Game{
		ID:       id,
		State:    StateStart,
		Ship:     object.NewShip(ShipStartX, ShipStartY, ShipWidth, ShipHeight),
		Director: NewDirector(),
		controls: controls,
		log:      log.With("game", id),
	}
	g.spawnWave()
	return g
}

// Begin leaves the title screen and starts the clock. Calling it again has no
// effect.
func (g *Game) Begin(now time.Time) {
	if g.State != StateStart {
		return
	}
	g.State = StatePlaying
	g.lastTime = now
	g.log.Infow("game started", "columns", g.Director.Columns, "rows", g.Director.Rows)
}

// FrameScale returns the elapsed time since last, capped at MaxFrameTime, and
// that time expressed in 60Hz frames.
func FrameScale(now, last time.Time) (dt time.Duration, scale float64) {
	dt = now.Sub(last)
	if dt > MaxFrameTime {
		dt = MaxFrameTime
	}
	if dt < 0 {
		dt = 0
	}
	return dt, dt.Seconds() * ReferenceFPS
}

// Tick advances the simulation to now.
func (g *Game) Tick(now time.Time) {
	if g.State != StatePlaying {
		return
	}

	dt, scale := FrameScale(now, g.lastTime)
	g.lastTime = now

	cmd := g.controls.Load()
	g.steer(cmd, dt.Seconds(), scale)

	if cmd.MouthOpen && now.Sub(g.lastShot) > MouthFireCooldown {
		g.shoot()
		g.lastShot = now
	}

	g.Director.Advance(g.Aliens, scale)
	for i := range g.Aliens {
		if g.Aliens[i].Alive && g.Aliens[i].Y >= g.Ship.Y {
			g.State = StateGameOver
			g.emit(EventGameOver)
			g.log.Infow("game over", "score", g.Score, "wave", g.Director.Number)
			return
		}
	}

	g.moveBullets(scale)
	g.Bullets.EvictExpired()

	if g.Alive == 0 {
		g.emit(EventWaveCleared)
		g.Director.Escalate()
		g.Bullets.Clear()
		g.spawnWave()
		g.log.Infow("wave cleared", "score", g.Score, "next", g.Director.Number,
			"columns", g.Director.Columns, "rows", g.Director.Rows,
			"velocity", g.Director.VelocityX)
	}
}

// steer applies hands-free movement: the analog axis when it is non-zero,
// otherwise the binary direction flags.
func (g *Game) steer(cmd control.Command, dt, scale float64) {
	switch {
	case math.Abs(cmd.AxisX) > AxisEpsilon:
		g.Ship.X += cmd.AxisX * MaxAxisSpeed * dt
	case cmd.Left && g.Ship.X-ShipAxisStep >= 0:
		g.Ship.X -= ShipAxisStep * scale
	case cmd.Right && g.Ship.X+ShipAxisStep+g.Ship.Width <= BoardWidth:
		g.Ship.X += ShipAxisStep * scale
	}
	g.Ship.ClampX(BoardWidth)
}

func (g *Game) moveBullets(scale float64) {
	for i := 0; i < g.Bullets.Len(); i++ {
		b := g.Bullets.At(i)
		b.Y += BulletVelocityY * scale
		if b.Used {
			continue
		}
		for j := range g.Aliens {
			a := &g.Aliens[j]
			if a.Alive && object.Overlaps(b, a) {
				b.Used = true
				a.Alive = false
				g.Alive--
				g.Score += ScorePerAlien
				g.emit(EventKill)
				break
			}
		}
	}
}

// MoveShipLeft moves the ship one tile left if the whole step fits.
func (g *Game) MoveShipLeft() {
	if g.State != StatePlaying {
		return
	}
	if g.Ship.X-ShipKeyStep >= 0 {
		g.Ship.X -= ShipKeyStep
	}
}

// MoveShipRight moves the ship one tile right if the whole step fits.
func (g *Game) MoveShipRight() {
	if g.State != StatePlaying {
		return
	}
	if g.Ship.X+ShipKeyStep+g.Ship.Width <= BoardWidth {
		g.Ship.X += ShipKeyStep
	}
}

// Fire spawns a bullet immediately. Unlike mouth fire it has no cooldown.
func (g *Game) Fire() {
	if g.State != StatePlaying {
		return
	}
	g.shoot()
}

// DrainEvents returns the events emitted since the last call.
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	events := g.events
	g.events = nil
	return events
}

func (g *Game) shoot() {
	x, y := g.Ship.Muzzle()
	g.Bullets.Push(object.Bullet{X: x, Y: y, Width: BulletWidth, Height: BulletHeight})
	g.emit(EventShot)
}

func (g *Game) spawnWave() {
	g.Aliens = g.Director.Spawn()
	g.Alive = len(g.Aliens)
}

func (g *Game) emit(t EventType) {
	g.events = append(g.events, Event{Type: t, Score: g.Score, Wave: g.Director.Number})
}
