package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func feed(s *Smoother, tilt float64, n int) Output {
	var out Output
	for i := 0; i < n; i++ {
		out = s.Update(tilt, 0)
	}
	return out
}

func TestSmootherAcceptsRightThenReleases(t *testing.T) {
	s := NewSmoother(DefaultConfig())

	assert.Equal(t, DirectionNone, s.Update(0.20, 0).Direction)
	assert.Equal(t, DirectionNone, s.Update(0.20, 0).Direction)
	assert.Equal(t, DirectionRight, s.Update(0.20, 0).Direction)

	assert.Equal(t, DirectionRight, s.Update(0.02, 0).Direction)
	assert.Equal(t, DirectionNone, s.Update(0.02, 0).Direction)
}

func TestSmootherSustainedTilt(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		tilt float64
		want Direction
	}{
		{"strong right", 0.25, DirectionRight},
		{"strong left", -0.25, DirectionLeft},
		{"just over activation", 0.11, DirectionRight},
		{"below release", 0.05, DirectionNone},
		{"below release negative", -0.05, DirectionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSmoother(cfg)
			n := cfg.ActivateFrames
			if cfg.ReleaseFrames > n {
				n = cfg.ReleaseFrames
			}
			assert.Equal(t, tt.want, feed(s, tt.tilt, n).Direction)
			assert.Equal(t, tt.want, feed(s, tt.tilt, 10).Direction)
		})
	}
}

func TestSmootherNeedsActivateFrames(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSmoother(cfg)
	out := feed(s, -0.3, cfg.ActivateFrames-1)
	assert.Equal(t, DirectionNone, out.Direction)
	assert.Equal(t, DirectionLeft, s.Update(-0.3, 0).Direction)
}

func TestSmootherIgnoresSingleOutlier(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	feed(s, 0.0, 5)

	assert.Equal(t, DirectionNone, s.Update(0.3, 0).Direction)
	assert.Equal(t, DirectionNone, feed(s, 0.0, 5).Direction)

	feed(s, -0.2, 5)
	assert.Equal(t, DirectionLeft, s.Direction())
	assert.Equal(t, DirectionLeft, s.Update(0.3, 0).Direction)
	assert.Equal(t, DirectionLeft, s.Update(-0.2, 0).Direction)
}

func TestSmootherHoldsBetweenThresholds(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	feed(s, 0.2, 3)
	// 0.08 is under activation but above release, so Right is kept.
	assert.Equal(t, DirectionRight, feed(s, 0.08, 10).Direction)
}

func TestSmootherMouthGate(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	assert.False(t, s.Update(0, 0.05).MouthOpen)
	assert.False(t, s.Update(0, 0.06).MouthOpen)
	assert.True(t, s.Update(0, 0.061).MouthOpen)
	assert.False(t, s.Update(0, 0.01).MouthOpen)
}

func TestSmootherAxisIsFiltered(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	first := s.Update(0.5, 0).AxisX
	assert.InDelta(t, 0.15, first, 1e-9)

	out := feed(s, 0.5, 100)
	assert.InDelta(t, 1.0, out.AxisX, 1e-3)
	assert.LessOrEqual(t, out.AxisX, 1.0)

	out = feed(s, 0.0, 100)
	assert.InDelta(t, 0.0, out.AxisX, 1e-3)
}

func TestAxisFromTilt(t *testing.T) {
	const dz, sat = 0.03, 0.25

	assert.Equal(t, 0.0, AxisFromTilt(0, dz, sat))
	assert.Equal(t, 0.0, AxisFromTilt(0.03, dz, sat))
	assert.Equal(t, 0.0, AxisFromTilt(-0.029, dz, sat))
	assert.Equal(t, 1.0, AxisFromTilt(0.25, dz, sat))
	assert.Equal(t, 1.0, AxisFromTilt(0.9, dz, sat))
	assert.Equal(t, -1.0, AxisFromTilt(-0.4, dz, sat))
	assert.InDelta(t, 0.5, AxisFromTilt(0.14, dz, sat), 1e-9)
	assert.InDelta(t, -0.5, AxisFromTilt(-0.14, dz, sat), 1e-9)

	prev := 0.0
	for tilt := 0.031; tilt < 0.3; tilt += 0.001 {
		v := AxisFromTilt(tilt, dz, sat)
		assert.GreaterOrEqual(t, v, prev, "tilt %.3f", tilt)
		assert.Equal(t, -v, AxisFromTilt(-tilt, dz, sat))
		prev = v
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "←", DirectionLeft.String())
	assert.Equal(t, "→", DirectionRight.String())
	assert.Equal(t, "·", DirectionNone.String())
}

func TestSmootherAveragesJitterAroundActivation(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	var out Output
	for i := 0; i < 20; i++ {
		tilt := 0.13
		if i%2 == 1 {
			tilt = 0.095
		}
		out = s.Update(tilt, 0)
		if i >= 2 {
			assert.Equal(t, DirectionRight, out.Direction, "sample %d", i)
		}
	}
	assert.Greater(t, out.Smoothed, 0.1)
	assert.Less(t, out.Smoothed, 0.13)
}

func TestSmootherSmoothedIsWindowMean(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	feed(s, 0.05, 4)
	assert.InDelta(t, 0.08, s.Update(0.20, 0).Smoothed, 1e-9)

	s = NewSmoother(DefaultConfig())
	var out Output
	for _, tilt := range []float64{0.2, 0.3, 0.1, 0.08, 0.25, 0.15} {
		out = s.Update(tilt, 0)
	}
	assert.InDelta(t, (0.3+0.1+0.08+0.25+0.15)/5, out.Smoothed, 1e-9)
}

func TestSmootherReseedsOnReturnToCenter(t *testing.T) {
	s := NewSmoother(DefaultConfig())
	feed(s, -0.3, 5)
	out := s.Update(0.01, 0)
	assert.InDelta(t, 0.01, out.Smoothed, 1e-9)
}
