package perception

import "math"

// Direction is the debounced categorical steering decision.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// String returns the direction as an arrow for the debug overlay.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "←"
	case DirectionRight:
		return "→"
	default:
		return "·"
	}
}

// Output is one smoothed control sample.
type Output struct {
	Direction Direction
	Smoothed  float64 // Window mean of raw tilt
	AxisX     float64 // EMA-filtered analog axis in [-1, 1]
	MouthOpen bool
}

// Smoother turns raw tilt and mouth-gap ratios into a debounced direction
// and a smoothed analog axis. It is not safe for concurrent use; the sampler
// owns it.
type Smoother struct {
	cfg Config

	window  []float64 // Ring of recent raw samples
	next    int
	count   int
	engaged bool // Previous raw sample was at or above the release threshold

	candidate   Direction
	accepted    Direction
	activeHold  int
	releaseHold int

	axis float64
}

// NewSmoother creates a smoother in the neutral state.
func NewSmoother(cfg Config) *Smoother {
	size := cfg.WindowSize
	if size < 1 {
		size = 1
	}
	return &Smoother{
		cfg:    cfg,
		window: make([]float64, size),
	}
}

// Direction returns the currently accepted direction.
func (s *Smoother) Direction() Direction {
	return s.accepted
}

// Update feeds one raw sample and returns the resulting control output.
//
// The smoothed tilt is the mean of the window. The window is only re-seeded
// when a raw sample drops under the release threshold after being at or above
// it, so a return to center is seen at once while jitter anywhere above the
// release threshold is still averaged.
func (s *Smoother) Update(tilt, mouthGap float64) Output {
	engaged := math.Abs(tilt) >= s.cfg.ReleaseThreshold
	if s.engaged && !engaged {
		s.next, s.count = 0, 0
	}
	s.engaged = engaged
	s.push(tilt)
	smoothed := s.mean()

	candidate := classify(smoothed, s.cfg.ActivateThreshold)
	if candidate != s.candidate {
		s.candidate = candidate
		s.activeHold = 0
		s.releaseHold = 0
	}

	switch {
	case candidate != DirectionNone:
		s.activeHold++
		if s.activeHold >= s.cfg.ActivateFrames {
			s.accepted = candidate
		}
	case math.Abs(smoothed) < s.cfg.ReleaseThreshold:
		s.releaseHold++
		if s.releaseHold >= s.cfg.ReleaseFrames {
			s.accepted = DirectionNone
		}
	default:
		// Between release and activation: hold the current decision.
		s.releaseHold = 0
	}

	target := AxisFromTilt(smoothed, s.cfg.Deadzone, s.cfg.SaturationTilt)
	s.axis = s.cfg.AxisSmoothing*s.axis + (1-s.cfg.AxisSmoothing)*target

	return Output{
		Direction: s.accepted,
		Smoothed:  smoothed,
		AxisX:     s.axis,
		MouthOpen: mouthGap > s.cfg.MouthOpenThreshold,
	}
}

func (s *Smoother) push(v float64) {
	s.window[s.next] = v
	s.next = (s.next + 1) % len(s.window)
	if s.count < len(s.window) {
		s.count++
	}
}

func (s *Smoother) mean() float64 {
	if s.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < s.count; i++ {
		sum += s.window[i]
	}
	return sum / float64(s.count)
}

func classify(v, threshold float64) Direction {
	switch {
	case v > threshold:
		return DirectionRight
	case v < -threshold:
		return DirectionLeft
	default:
		return DirectionNone
	}
}

// AxisFromTilt maps a tilt ratio to an analog axis value: 0 inside the
// deadzone, a linear ramp up to ±1 at saturation, and ±1 beyond.
func AxisFromTilt(tilt, deadzone, saturation float64) float64 {
	mag := math.Abs(tilt)
	if mag <= deadzone || math.IsNaN(tilt) {
		return 0
	}
	v := 1.0
	if span := saturation - deadzone; span > 0 && mag < saturation {
		v = (mag - deadzone) / span
	}
	return math.Copysign(v, tilt)
}
