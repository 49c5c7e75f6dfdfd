// Package control holds the command slot shared between the perception
// sampler and the simulation loop.
package control

import (
	"math"
	"sync/atomic"
)

// Command is the normalized hands-free control state.
type Command struct {
	Left      bool
	Right     bool
	MouthOpen bool
	AxisX     float64 // Continuous steering in [-1, 1]
}

// Publisher accepts new commands. Implemented by Channel.
type Publisher interface {
	Publish(cmd Command)
}

// Reader returns the most recent command. Implemented by Channel.
type Reader interface {
	Load() Command
}

// Channel is a single-slot, last-write-wins command holder.
// Publish and Load may be called from different goroutines; a Load always
// observes one complete Command, never a mix of two publishes.
type Channel struct {
	current atomic.Pointer[Command]
}

// Compile-time checks that Channel implements both sides.
var (
	_ Publisher = (*Channel)(nil)
	_ Reader    = (*Channel)(nil)
)

// NewChannel creates a channel holding the neutral command.
func NewChannel() *Channel {
	c := &Channel{}
	c.current.Store(&Command{})
	return c
}

// Publish replaces the held command with a coerced copy of cmd.
func (c *Channel) Publish(cmd Command) {
	cmd = Coerce(cmd)
	c.current.Store(&cmd)
}

// Load returns a snapshot of the most recently published command.
func (c *Channel) Load() Command {
	if cmd := c.current.Load(); cmd != nil {
		return *cmd
	}
	return Command{}
}

// Coerce clamps AxisX into [-1, 1]. NaN becomes 0; infinities clamp to ±1.
func Coerce(cmd Command) Command {
	switch {
	case math.IsNaN(cmd.AxisX):
		cmd.AxisX = 0
	case cmd.AxisX > 1:
		cmd.AxisX = 1
	case cmd.AxisX < -1:
		cmd.AxisX = -1
	}
	return cmd
}
