// Package loop drives one game on one terminal: it polls keys, ticks the
// simulation at a fixed frame rate and renders every frame.
package loop

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/control"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/game"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/object"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// surfaceRetryDelay is how long Start waits before probing the terminal again.
const surfaceRetryDelay = 50 * time.Millisecond

// ErrSurfaceUnavailable means the terminal has no usable size yet.
var ErrSurfaceUnavailable = errors.New("loop: render surface unavailable")

// Starter lazily prepares the render surface and begins play.
type Starter interface {
	Start(ctx context.Context) error
}

// CuePlayer receives game events for sound.
type CuePlayer interface {
	Play(ev game.EventType)
}

// Options configures a Session.
type Options struct {
	Controls     *control.Channel  // Hands-free commands; nil for keyboard only
	Log          *zap.SugaredLogger
	Cues         CuePlayer         // nil for silence
	TermSizeFunc draw.TermSizeFunc // nil uses the process terminal
	Status       func() string     // Extra text for the debug line
}

// Session owns one game and the terminal it is drawn on.
type Session struct {
	opts     Options
	controls *control.Channel
	game     *game.Game
	log      *zap.SugaredLogger

	reader io.Reader
	writer io.Writer
	fw     *draw.FrameWriter
	canvas *draw.Canvas
	layout layout

	started bool
	running bool
	debug   bool
}

var _ Starter = (*Session)(nil)

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r io.Reader, w io.Writer, opts Options) *Session {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	controls := opts.Controls
	if controls == nil {
		controls = control.NewChannel()
	}
	s := &Session{
		opts:     opts,
		controls: controls,
		log:      opts.Log,
		reader:   r,
		writer:   w,
		running:  true,
	}
	s.game = game.New(controls, s.log)
	return s
}

// Game returns the current game.
func (s *Session) Game() *game.Game {
	return s.game
}

// Start waits until the terminal reports a usable size and sets up the
// canvas. It retries every 50ms until then or until ctx ends. Calling it
// again after success has no effect.
func (s *Session) Start(ctx context.Context) error {
	if s.started {
		return nil
	}
	for attempt := 0; ; attempt++ {
		err := s.initSurface()
		if err == nil {
			break
		}
		if attempt == 0 {
			s.log.Debugw("waiting for render surface", "error", err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, ctx.Err())
		case <-time.After(surfaceRetryDelay):
		}
	}
	s.started = true
	s.log.Infow("session started", "game", s.game.ID,
		"cols", s.layout.cols, "rows", s.layout.rows)
	return nil
}

func (s *Session) initSurface() error {
	termW, termH, err := s.opts.TermSizeFunc()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	if termW <= 0 || termH <= 0 {
		return ErrSurfaceUnavailable
	}
	s.layout = fitBoard(termW, termH)
	s.canvas = draw.NewCanvas(s.layout.cols, s.layout.rows, game.BoardWidth, game.BoardHeight)
	s.canvas.SetOffset(s.layout.offCol, s.layout.offRow)
	s.fw = draw.NewFrameWriter(s.writer, s.layout.offCol, s.layout.offRow)
	return nil
}

// Run starts the session and blocks until the player quits, the input ends
// or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	stream := input.StartStream(bufio.NewReader(s.reader))
	defer stream.Stop()

	draw.HideCursor(s.writer)
	defer draw.ShowCursor(s.writer)
	draw.ClearScreen(s.writer)

	ticker := time.NewTicker(targetFrameTime)
	defer ticker.Stop()

	for s.running {
		select {
		case <-ctx.Done():
			s.log.Infow("session cancelled", "game", s.game.ID, "score", s.game.Score)
			draw.ClearScreen(s.writer)
			return nil
		case <-ticker.C:
		}

		if err := s.frame(stream.Poll(), time.Now()); err != nil {
			return err
		}
		if stream.Closed() {
			s.log.Infow("input closed", "game", s.game.ID)
			break
		}
	}

	draw.ClearScreen(s.writer)
	return nil
}

// frame runs one Input → Update → Draw cycle.
func (s *Session) frame(keys []input.Key, now time.Time) error {
	// ===== INPUT PHASE =====
	for _, k := range keys {
		s.handleKey(k, now)
	}
	if !s.running {
		return nil
	}

	// ===== UPDATE PHASE =====
	s.game.Tick(now)
	for _, ev := range s.game.DrainEvents() {
		if s.opts.Cues != nil {
			s.opts.Cues.Play(ev.Type)
		}
		if ev.Type != game.EventShot {
			s.log.Debugw("game event", "event", ev.Type, "score", ev.Score, "wave", ev.Wave)
		}
	}
	s.updateScreen()

	// ===== DRAW PHASE =====
	return s.drawFrame()
}

func (s *Session) handleKey(k input.Key, now time.Time) {
	switch k {
	case input.KeyQuit:
		s.running = false
	case input.KeyToggleDebug:
		s.debug = !s.debug
	case input.KeyLeft:
		s.game.MoveShipLeft()
	case input.KeyRight:
		s.game.MoveShipRight()
	case input.KeyFire, input.KeyEnter:
		switch s.game.State {
		case game.StateStart:
			s.game.Begin(now)
		case game.StatePlaying:
			if k == input.KeyFire {
				s.game.Fire()
			}
		case game.StateGameOver:
			if k == input.KeyEnter {
				s.restart(now)
			}
		}
	}
}

// restart replaces a finished game with a fresh one that starts at once.
func (s *Session) restart(now time.Time) {
	prev := s.game
	s.game = game.New(s.controls, s.log)
	s.game.Begin(now)
	s.log.Infow("game restarted", "previous", prev.ID, "previousScore", prev.Score)
}

// updateScreen follows terminal resizes.
func (s *Session) updateScreen() {
	termW, termH, err := s.opts.TermSizeFunc()
	if err != nil || termW <= 0 || termH <= 0 {
		return
	}
	l := fitBoard(termW, termH)
	if l == s.layout {
		return
	}
	s.layout = l
	s.canvas.Resize(l.cols, l.rows)
	s.canvas.SetOffset(l.offCol, l.offRow)
	s.fw.SetOffset(l.offCol, l.offRow)
}

// drawFrame clears the screen and draws the board and overlays.
func (s *Session) drawFrame() error {
	s.fw.WriteString("\033[H\033[2J")
	s.canvas.Clear()

	s.game.Draw(object.DrawContext{Canvas: s.canvas})
	s.canvas.Render(s.fw)
	s.canvas.RenderBorder(s.fw)

	drawUI(s, s.fw)

	return s.fw.Flush()
}
