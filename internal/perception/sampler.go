package perception

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/control"
)

// Sampler runs the perception model at an adaptive cadence and publishes
// smoothed commands. Detections never overlap: the next one is scheduled only
// after the previous one has finished.
type Sampler struct {
	cfg      Config
	model    Model
	source   FrameSource // Optional; nil lets the model capture on its own
	out      control.Publisher
	smoother *Smoother
	log      *zap.SugaredLogger

	busy    atomic.Bool
	stopped atomic.Bool

	startOnce sync.Once
	cancel    context.CancelFunc
	done      chan struct{}

	lastDetect atomic.Int64 // Duration of the last detection, for the overlay
}

// NewSampler creates a sampler. source may be nil.
func NewSampler(cfg Config, model Model, source FrameSource, out control.Publisher, log *zap.SugaredLogger) *Sampler {
	return &Sampler{
		cfg:      cfg,
		model:    model,
		source:   source,
		out:      out,
		smoother: NewSmoother(cfg),
		log:      log,
		done:     make(chan struct{}),
	}
}

// Start launches the sampling goroutine. Calling it again has no effect.
func (s *Sampler) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		s.log.Infow("perception sampler started",
			"minDelay", s.cfg.MinDelay, "maxDelay", s.cfg.MaxDelay)
		go s.run(ctx)
	})
}

// Stop halts scheduling. A detection already in flight completes but its
// result is discarded, as it is when the context passed to Start ends.
func (s *Sampler) Stop() {
	if s.stopped.Swap(true) {
		return
	}
	// Never started: nothing to cancel, but Wait must not block.
	s.startOnce.Do(func() { close(s.done) })
	if s.cancel != nil {
		s.cancel()
	}
}

// Wait blocks until the sampling goroutine has exited.
func (s *Sampler) Wait() {
	<-s.done
}

// LastDetect returns how long the most recent detection took.
func (s *Sampler) LastDetect() time.Duration {
	return time.Duration(s.lastDetect.Load())
}

func (s *Sampler) run(ctx context.Context) {
	defer close(s.done)
	defer s.log.Infow("perception sampler stopped")

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		if s.stopped.Load() {
			return
		}

		elapsed := s.cycle(ctx)
		if s.stopped.Load() || ctx.Err() != nil {
			return
		}
		timer.Reset(NextDelay(elapsed, s.cfg))
	}
}

// cycle performs one detection and publishes its result. It returns how long
// the detection took, or 0 if another detection was still in flight.
func (s *Sampler) cycle(ctx context.Context) time.Duration {
	if !s.busy.CompareAndSwap(false, true) {
		return 0
	}
	defer s.busy.Store(false)

	// The detection is not cut short by Stop; its result is dropped instead.
	detectCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.DetectTimeout)
	defer cancel()

	start := time.Now()
	faces, err := s.detect(detectCtx)
	elapsed := time.Since(start)
	s.lastDetect.Store(int64(elapsed))

	// Stopped or cancelled while detecting: drop the result.
	if s.stopped.Load() || ctx.Err() != nil {
		return elapsed
	}
	if err != nil {
		s.log.Warnw("face detection failed", "error", err, "took", elapsed)
		return elapsed
	}
	if len(faces) == 0 {
		return elapsed
	}

	m, err := Measure(faces[0], s.cfg.Indices)
	if err != nil {
		s.log.Debugw("skipping face", "error", err, "points", len(faces[0]))
		return elapsed
	}

	out := s.smoother.Update(m.Tilt, m.MouthGap)
	s.out.Publish(control.Command{
		Left:      out.Direction == DirectionLeft,
		Right:     out.Direction == DirectionRight,
		MouthOpen: out.MouthOpen,
		AxisX:     out.AxisX,
	})
	return elapsed
}

func (s *Sampler) detect(ctx context.Context) ([]Landmarks, error) {
	var frame Frame
	if s.source != nil {
		f, err := s.source.Capture(ctx)
		if err != nil {
			return nil, err
		}
		frame = f
	}
	return s.model.EstimateFaces(ctx, frame)
}

// NextDelay returns the pause before the next detection: the last detection
// time scaled by DelayFactor and clamped to [MinDelay, MaxDelay].
func NextDelay(elapsed time.Duration, cfg Config) time.Duration {
	d := time.Duration(float64(elapsed) * cfg.DelayFactor)
	if d < cfg.MinDelay {
		return cfg.MinDelay
	}
	if d > cfg.MaxDelay {
		return cfg.MaxDelay
	}
	return d
}
