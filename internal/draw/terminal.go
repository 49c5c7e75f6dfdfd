package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes written at once. Roughly one MTU, which
// keeps frames flowing smoothly over SSH.
const maxChunkSize = 1400

// TermSizeFunc returns the terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FrameWriter accumulates a whole frame (canvas cells and text overlays) and
// writes it out in MTU-sized chunks on Flush.
type FrameWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewFrameWriter creates a FrameWriter on w. Offsets are added to every
// cursor position so the board can be centered in a larger terminal.
func NewFrameWriter(w io.Writer, offsetCol, offsetRow int) *FrameWriter {
	return &FrameWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset after a resize.
func (fw *FrameWriter) SetOffset(offsetCol, offsetRow int) {
	fw.offCol = offsetCol
	fw.offRow = offsetRow
}

// MoveCursor appends a cursor position sequence. col and row are 1-based
// board coordinates.
func (fw *FrameWriter) MoveCursor(col, row int) {
	fw.buf.WriteString("\033[")
	fw.buf.Write(strconv.AppendInt(fw.numBuf[:0], int64(row+fw.offRow), 10))
	fw.buf.WriteByte(';')
	fw.buf.Write(strconv.AppendInt(fw.numBuf[:0], int64(col+fw.offCol), 10))
	fw.buf.WriteByte('H')
}

// Write implements io.Writer.
func (fw *FrameWriter) Write(p []byte) (int, error) {
	return fw.buf.Write(p)
}

// WriteString appends raw text (including escape sequences).
func (fw *FrameWriter) WriteString(s string) {
	fw.buf.WriteString(s)
}

// WriteAt writes s starting at the given 1-based board cell.
func (fw *FrameWriter) WriteAt(col, row int, s string) {
	fw.MoveCursor(col, row)
	fw.buf.WriteString(s)
}

// WriteCentered writes s horizontally centered on a board of the given width.
func (fw *FrameWriter) WriteCentered(width, row int, s string) {
	col := (width-len([]rune(s)))/2 + 1
	if col < 1 {
		col = 1
	}
	fw.WriteAt(col, row, s)
}

var _ io.Writer = (*FrameWriter)(nil)

// Flush writes the pending frame in chunks and resets the buffer.
func (fw *FrameWriter) Flush() error {
	data := fw.buf.String()
	fw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := fw.out.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return fw.out.Flush()
}
