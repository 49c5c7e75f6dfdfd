// Package audio plays short synthesized cues for game events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// note is one tone of a cue.
type note struct {
	freq     float64
	duration time.Duration
}

var cueNotes = map[game.EventType][]note{
	game.EventShot:        {{880, 35 * time.Millisecond}},
	game.EventKill:        {{440, 40 * time.Millisecond}, {660, 60 * time.Millisecond}},
	game.EventWaveCleared: {{523, 80 * time.Millisecond}, {659, 80 * time.Millisecond}, {784, 140 * time.Millisecond}},
	game.EventGameOver:    {{392, 200 * time.Millisecond}, {262, 400 * time.Millisecond}},
}

// Cues mixes event sounds into the speaker. A Cues whose Init failed, or that
// was never initialized, stays silent.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64 // Linear gain in (0, 1]
	initialized bool
	log         *zap.SugaredLogger
}

// New creates silent cues; call Init to open the speaker.
func New(volume float64, log *zap.SugaredLogger) *Cues {
	return &Cues{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    log,
	}
}

// Init opens the audio device and starts the mixer.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		c.log.Warnw("audio unavailable, cues disabled", "error", err)
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	c.log.Infow("audio initialized", "sampleRate", int(sampleRate))
	return nil
}

// Play queues the cue for ev. Unknown events are ignored.
func (c *Cues) Play(ev game.EventType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	s := Tone(ev, c.volume)
	if s == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// Tone builds the finite streamer for ev at the given linear volume, or nil
// if ev has no cue.
func Tone(ev game.EventType, volume float64) beep.Streamer {
	notes, ok := cueNotes[ev]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			continue
		}
		parts = append(parts, beep.Take(sampleRate.N(n.duration), sine))
	}
	return gain(beep.Seq(parts...), volume)
}

func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(vol, 1))}
}
