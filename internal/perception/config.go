package perception

import (
	"time"

	"github.com/tomz197/invaders/internal/config"
)

// Config holds the tuning for smoothing, debouncing and sampling cadence.
type Config struct {
	// Tilt smoothing and hysteresis
	WindowSize        int     // Raw samples averaged into the smoothed tilt
	ActivateThreshold float64 // |smoothed| above this proposes a direction
	ReleaseThreshold  float64 // |smoothed| below this counts toward neutral
	ActivateFrames    int     // Consecutive identical candidates to accept a direction
	ReleaseFrames     int     // Consecutive sub-release samples to return to neutral

	// Analog axis
	Deadzone       float64 // |tilt| at or below this maps to 0
	SaturationTilt float64 // |tilt| at or above this maps to ±1
	AxisSmoothing  float64 // EMA weight kept from the previous axis value

	// Mouth gate
	MouthOpenThreshold float64 // Mouth-gap ratio above this fires

	// Adaptive cadence
	MinDelay      time.Duration
	MaxDelay      time.Duration
	DelayFactor   float64       // Next delay = last detection time × factor, clamped
	DetectTimeout time.Duration // Upper bound on a single inference call

	Indices Indices
}

// DefaultConfig returns the tuning the game ships with.
func DefaultConfig() Config {
	return Config{
		WindowSize:         5,
		ActivateThreshold:  0.10,
		ReleaseThreshold:   0.06,
		ActivateFrames:     3,
		ReleaseFrames:      2,
		Deadzone:           0.03,
		SaturationTilt:     0.25,
		AxisSmoothing:      0.85,
		MouthOpenThreshold: 0.06,
		MinDelay:           180 * time.Millisecond,
		MaxDelay:           500 * time.Millisecond,
		DelayFactor:        3,
		DetectTimeout:      2 * time.Second,
		Indices:            DefaultIndices(),
	}
}

// ConfigFromEnv returns DefaultConfig with INVADERS_PERCEPTION_* overrides.
func ConfigFromEnv() Config {
	c := DefaultConfig()
	c.ActivateThreshold = config.GetEnvFloat("INVADERS_PERCEPTION_ACTIVATE", c.ActivateThreshold)
	c.ReleaseThreshold = config.GetEnvFloat("INVADERS_PERCEPTION_RELEASE", c.ReleaseThreshold)
	c.ActivateFrames = config.GetEnvInt("INVADERS_PERCEPTION_ACTIVATE_FRAMES", c.ActivateFrames)
	c.ReleaseFrames = config.GetEnvInt("INVADERS_PERCEPTION_RELEASE_FRAMES", c.ReleaseFrames)
	c.Deadzone = config.GetEnvFloat("INVADERS_PERCEPTION_DEADZONE", c.Deadzone)
	c.SaturationTilt = config.GetEnvFloat("INVADERS_PERCEPTION_SATURATION", c.SaturationTilt)
	c.MouthOpenThreshold = config.GetEnvFloat("INVADERS_PERCEPTION_MOUTH", c.MouthOpenThreshold)
	c.MinDelay = config.GetEnvDuration("INVADERS_PERCEPTION_MIN_DELAY", c.MinDelay)
	c.MaxDelay = config.GetEnvDuration("INVADERS_PERCEPTION_MAX_DELAY", c.MaxDelay)
	c.DetectTimeout = config.GetEnvDuration("INVADERS_PERCEPTION_TIMEOUT", c.DetectTimeout)
	return c
}
