package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	examples := []struct {
		Name string
		In   string
		Keys []Key
		Rest string
	}{
		{Name: "arrows", In: "\x1b[D\x1b[C", Keys: []Key{KeyLeft, KeyRight}},
		{Name: "letters", In: "adhl", Keys: []Key{KeyLeft, KeyRight, KeyLeft, KeyRight}},
		{Name: "fire and enter", In: " \r", Keys: []Key{KeyFire, KeyEnter}},
		{Name: "quit", In: "q", Keys: []Key{KeyQuit}},
		{Name: "ctrl-c", In: "\x03", Keys: []Key{KeyQuit}},
		{Name: "ignored", In: "xyz", Keys: nil},
		{Name: "up arrow ignored", In: "\x1b[A ", Keys: []Key{KeyFire}},
		{Name: "split escape", In: " \x1b[", Keys: []Key{KeyFire}, Rest: "\x1b["},
		{Name: "lone escape", In: "\x1b", Keys: nil, Rest: "\x1b"},
	}

	for _, ex := range examples {
		t.Run(ex.Name, func(t *testing.T) {
			keys, rest := Parse([]byte(ex.In))
			assert.Equal(t, ex.Keys, keys)
			assert.Equal(t, ex.Rest, string(rest))
		})
	}
}

func TestStreamPollCompletesSplitSequence(t *testing.T) {
	pr, pw := io.Pipe()
	s := StartStream(bufio.NewReader(pr))

	go func() {
		pw.Write([]byte("\x1b["))
	}()
	assert.Eventually(t, func() bool {
		s.Poll()
		return len(s.pending) == 2
	}, time.Second, time.Millisecond)

	go func() {
		pw.Write([]byte("D"))
	}()
	var got []Key
	assert.Eventually(t, func() bool {
		got = append(got, s.Poll()...)
		return len(got) > 0
	}, time.Second, time.Millisecond)
	assert.Equal(t, []Key{KeyLeft}, got)

	pw.Close()
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader(" ")))
	var keys []Key
	assert.Eventually(t, func() bool {
		keys = append(keys, s.Poll()...)
		return s.Closed()
	}, time.Second, time.Millisecond)
	assert.Equal(t, []Key{KeyFire}, keys)
}

func TestStreamStopReleasesBlockedReader(t *testing.T) {
	// More bytes than the buffer holds and nobody polling.
	s := StartStream(bufio.NewReader(strings.NewReader(strings.Repeat("x", 300))))

	select {
	case <-s.finished:
		t.Fatal("reader exited before Stop")
	case <-time.After(20 * time.Millisecond):
	}

	s.Stop()
	s.Stop()
	select {
	case <-s.finished:
	case <-time.After(time.Second):
		t.Fatal("reader still blocked after Stop")
	}
}
