package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter accumulates terminal output and writes it in chunks for
// smooth network flow (e.g. over SSH). Coordinates passed to MoveCursor and
// WriteAt are 1-based canvas cells; the canvas offset is added automatically.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor appends an ANSI cursor position sequence.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer so a Canvas can render into the buffer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt writes s starting at canvas cell (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Layout is the placement of a square play area inside a terminal.
type Layout struct {
	Width     int // Canvas columns
	Height    int // Canvas rows; half the columns since a cell holds two pixels
	OffsetCol int // 0-based
	OffsetRow int // 0-based
}

// FitSquare computes the largest square area (in pixels) that fits a
// termWidth x termHeight terminal, capped at maxWidth x maxHeight cells and
// centered.
func FitSquare(termWidth, termHeight, maxWidth, maxHeight int) Layout {
	w := termWidth
	if maxWidth > 0 {
		w = min(w, maxWidth)
	}
	h := termHeight
	if maxHeight > 0 {
		h = min(h, maxHeight)
	}

	// One cell is one pixel wide and two pixels tall.
	w = min(w, h*2)
	w -= w % 2
	w = max(w, 2)
	h = w / 2

	return Layout{
		Width:     w,
		Height:    h,
		OffsetCol: max((termWidth-w)/2, 0),
		OffsetRow: max((termHeight-h)/2, 0),
	}
}

// ANSI sequences for screen management.
const (
	clearScreen    = "\033[H\033[2J"
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
	enterAltScreen = "\033[?1049h"
	exitAltScreen  = "\033[?1049l"
	resetStyle     = "\033[0m"
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	io.WriteString(w, clearScreen)
}

// EnterScreen switches to the alternate screen with mouse reporting on and
// the cursor hidden. mouse is the enable sequence for the reporting mode.
func EnterScreen(w io.Writer, mouse string) {
	io.WriteString(w, enterAltScreen+hideCursor+mouse+clearScreen)
}

// ExitScreen undoes EnterScreen. mouse is the disable sequence.
func ExitScreen(w io.Writer, mouse string) {
	io.WriteString(w, mouse+resetStyle+showCursor+exitAltScreen)
}
