// Package input decodes raw terminal bytes into key and mouse events.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// maxPending bounds how many bytes of an unfinished escape sequence are kept
// between reads. Anything longer is garbage and dropped.
const maxPending = 32

// Mouse reporting: any-event tracking with SGR extended coordinates.
const (
	EnableMouse  = "\033[?1000h\033[?1003h\033[?1006h"
	DisableMouse = "\033[?1006l\033[?1003l\033[?1000l"
)

// PointerEvent is a mouse report in 0-based terminal cells.
type PointerEvent struct {
	Col, Row int
	Press    bool // Primary button went down; otherwise the pointer just moved
}

// Input represents the input gathered since the previous frame.
type Input struct {
	Quit        bool
	Restart     bool
	ToggleDebug bool
	Fire        bool // Space or Enter
	Escape      bool
	Closed      bool // The underlying reader is gone
	Pointer     []PointerEvent
	Pressed     []byte
}

// Stream delivers input bytes via a channel and keeps any partial escape
// sequence until the rest of it arrives.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
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

	var in Input
	s.pending = decode(buf, &in)
	in.Closed = s.closed
	return in
}

// decode parses buf into in and returns an unfinished trailing escape
// sequence, if any.
func decode(buf []byte, in *Input) []byte {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			applyByte(in, b)
			continue
		}

		// ESC at the very end is the Escape key.
		if i+1 >= len(buf) {
			in.Escape = true
			continue
		}
		if buf[i+1] != '[' {
			in.Escape = true
			continue
		}
		if i+2 >= len(buf) {
			return keepPending(buf[i:])
		}

		switch buf[i+2] {
		case 'A', 'B', 'C', 'D': // Arrow keys are not bound
			i += 2
		case '<':
			end := bytes.IndexAny(buf[i+3:], "Mm")
			if end < 0 {
				return keepPending(buf[i:])
			}
			body := buf[i+3 : i+3+end]
			if ev, ok := parseSGR(body, buf[i+3+end] == 'M'); ok {
				in.Pointer = append(in.Pointer, ev)
			}
			i += 3 + end
		default:
			in.Escape = true
		}
	}
	return nil
}

func keepPending(rest []byte) []byte {
	if len(rest) > maxPending {
		return nil
	}
	return append([]byte(nil), rest...)
}

// parseSGR decodes the "button;col;row" body of an SGR mouse report.
func parseSGR(body []byte, pressed bool) (PointerEvent, bool) {
	parts := bytes.Split(body, []byte{';'})
	if len(parts) != 3 {
		return PointerEvent{}, false
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(string(p))
		if err != nil {
			return PointerEvent{}, false
		}
		vals[i] = v
	}
	button, col, row := vals[0], vals[1], vals[2]

	// Wheel
	if button&64 != 0 {
		return PointerEvent{}, false
	}
	motion := button&32 != 0
	return PointerEvent{
		Col:   col - 1,
		Row:   row - 1,
		Press: pressed && !motion && button&3 == 0,
	}, true
}

// applyByte maps a single key byte onto the input.
func applyByte(in *Input, b byte) {
	in.Pressed = append(in.Pressed, b)
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'r', 'R':
		in.Restart = true
	case 'd', 'D':
		in.ToggleDebug = true
	case ' ', '\n', '\r':
		in.Fire = true
	}
}
