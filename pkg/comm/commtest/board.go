// Package commtest provides an in-memory board for tests.
package commtest

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
)

// Board is a comm.Transport echoing every frame followed by the scripted
// response of the frame. Reads with nothing pending return 0 bytes like a
// timed out serial port.
type Board struct {
	lock      sync.Mutex
	frames    []string
	responses map[string]string
	pending   bytes.Buffer
	closed    bool
}

// NewBoard creates a Board.
func NewBoard() *Board {
	return &Board{responses: make(map[string]string)}
}

// Respond scripts the data bytes sent after the echo of frame.
func (b *Board) Respond(frame, data string) *Board {
	b.lock.Lock()
	b.responses[frame] = data
	b.lock.Unlock()
	return b
}

// Frames returns the frames written so far.
func (b *Board) Frames() []string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append([]string(nil), b.frames...)
}

// Closed tells whether Close was called.
func (b *Board) Closed() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.closed
}

// Write implements io.Writer.
func (b *Board) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.frames = append(b.frames, string(p))
	b.pending.Write(p)
	b.pending.WriteString(b.responses[string(p)])
	return len(p), nil
}

// Read implements io.Reader.
func (b *Board) Read(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if b.pending.Len() == 0 {
		return 0, nil
	}
	return b.pending.Read(p)
}

// Close implements io.Closer.
func (b *Board) Close() error {
	b.lock.Lock()
	b.closed = true
	b.lock.Unlock()
	return nil
}

// SweepData builds a well formed ADC sweep response, segment n carrying
// channel n with value values[n]. It is 96 bytes for 16 values.
func SweepData(values ...uint16) string {
	segs := make([]string, len(values))
	for n, val := range values {
		segs[n] = fmt.Sprintf("%x%04x", n, val)
	}
	return "A" + strings.Join(segs, "P")
}
