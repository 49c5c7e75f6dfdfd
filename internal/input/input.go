// Package input turns raw terminal bytes into discrete key events.
package input

import (
	"bufio"
	"sync"
)

// Key is a discrete key event. Terminals report presses only, so every Key is
// an edge: one event per press (or per auto-repeat).
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyFire
	KeyEnter
	KeyQuit
	KeyToggleDebug
)

// String returns a short name for logs.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyFire:
		return "fire"
	case KeyEnter:
		return "enter"
	case KeyQuit:
		return "quit"
	case KeyToggleDebug:
		return "debug"
	default:
		return "none"
	}
}

// Stream delivers input bytes from a reader via a buffered channel so the
// frame loop can drain them without blocking.
type Stream struct {
	ch       chan byte
	pending  []byte // Incomplete escape sequence carried to the next poll
	closed   bool
	done     chan struct{} // Closed by Stop
	stopOnce sync.Once
	finished chan struct{} // Closed when the reader goroutine exits
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// Call Stop when the stream is no longer polled.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:       make(chan byte, 128),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go func() {
		defer close(s.finished)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Stop releases the reader goroutine. It exits as soon as its current read
// returns; bytes read after Stop are dropped.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended (EOF or error).
func (s *Stream) Closed() bool {
	return s.closed
}

// Poll drains all available bytes without blocking and returns the keys they
// encode, in arrival order.
func (s *Stream) Poll() []Key {
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, rest := Parse(buf)
	if len(rest) > 0 && !s.closed {
		s.pending = append([]byte(nil), rest...)
	}
	return keys
}

// Parse decodes keys from buf. A trailing incomplete CSI sequence is returned
// as rest so it can be completed by the next read.
func Parse(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' {
			if i+1 >= len(buf) || (buf[i+1] == '[' && i+2 >= len(buf)) {
				return keys, buf[i:]
			}
			if buf[i+1] == '[' {
				switch buf[i+2] {
				case 'C':
					keys = append(keys, KeyRight)
				case 'D':
					keys = append(keys, KeyLeft)
				}
				i += 2
				continue
			}
			// Bare escape followed by something else: treat as quit.
			keys = append(keys, KeyQuit)
			continue
		}

		if k := byteKey(b); k != KeyNone {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func byteKey(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03':
		return KeyQuit
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case ' ':
		return KeyFire
	case '\n', '\r':
		return KeyEnter
	case 't', 'T':
		return KeyToggleDebug
	default:
		return KeyNone
	}
}
