package comm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/golang/glog"
)

// Transport is the byte channel to the board.
// Read must return early, with fewer bytes, 0 bytes or a timeout error,
// once the configured read timeout elapses.
type Transport interface {
	io.ReadWriteCloser
}

// Conn executes echo-acknowledged transactions over a Transport.
// Conn is not safe for concurrent use, callers must serialize transactions.
type Conn struct {
	// PhaseTimeout bounds the echo phase and the response phase as a whole,
	// so a board trickling bytes cannot stretch a phase past it. The
	// transport's own read timeout still bounds every single Read. 0
	// disables it.
	PhaseTimeout time.Duration

	transport Transport
	broken    error
	closed    bool
	now       func() time.Time
}

// NewConn wraps the transport.
func NewConn(t Transport) *Conn {
	return &Conn{transport: t, now: time.Now}
}

// Transport gets the wrapped transport.
func (c *Conn) Transport() Transport {
	return c.transport
}

// Broken returns the error which broke the connection, or nil.
func (c *Conn) Broken() error {
	return c.broken
}

// Transact writes frame, verifies the echo and reads expect data bytes.
// When expect is 0, no data phase read is attempted and an empty result
// is returned.
func (c *Conn) Transact(ctx context.Context, frame []byte, expect int) ([]byte, error) {
	if c.closed {
		return nil, os.ErrClosed
	}
	if c.broken != nil {
		return nil, ErrBroken
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	glog.V(2).Infof("TX %q", frame)
	if err := c.write(frame); err != nil {
		return nil, c.fail(err)
	}

	echo, err := c.readN(PhaseEcho, len(frame))
	if err != nil {
		return nil, c.fail(err)
	}
	if !bytes.Equal(echo, frame) {
		return nil, c.fail(&EchoMismatchError{Sent: frame, Received: echo})
	}

	if expect <= 0 {
		return []byte{}, nil
	}

	data, err := c.readN(PhaseResponse, expect)
	if err != nil {
		return nil, c.fail(err)
	}
	glog.V(2).Infof("RX %q", data)
	return data, nil
}

// Close closes the transport. It is safe to call more than once.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.transport.Close()
}

func (c *Conn) fail(err error) error {
	c.broken = err
	glog.V(1).Infof("transaction failed: %v", err)
	return err
}

func (c *Conn) write(frame []byte) error {
	n, err := c.transport.Write(frame)
	if err != nil {
		if isTimeout(err) {
			return &TimeoutError{Phase: PhaseWrite, Expected: len(frame), Received: n}
		}
		return &TransportError{Phase: PhaseWrite, Err: err}
	}
	if n < len(frame) {
		return &TransportError{Phase: PhaseWrite, Err: io.ErrShortWrite}
	}
	return nil
}

// readN reads exactly n bytes. A read returning nothing, a timeout error
// or the phase deadline passing ends the phase with a TimeoutError.
func (c *Conn) readN(phase Phase, n int) ([]byte, error) {
	var deadline time.Time
	if c.PhaseTimeout > 0 {
		deadline = c.now().Add(c.PhaseTimeout)
	}
	buf := make([]byte, n)
	var got int
	for got < n {
		m, err := c.transport.Read(buf[got:])
		got += m
		if err != nil {
			if isTimeout(err) {
				break
			}
			if err == io.EOF && got < n {
				return nil, &TransportError{Phase: phase, Err: io.ErrUnexpectedEOF}
			}
			if got < n {
				return nil, &TransportError{Phase: phase, Err: err}
			}
			break
		}
		if m == 0 {
			break
		}
		if got < n && !deadline.IsZero() && !c.now().Before(deadline) {
			break
		}
	}
	if got < n {
		return nil, &TimeoutError{Phase: phase, Expected: n, Received: got}
	}
	return buf, nil
}

func isTimeout(err error) bool {
	return os.IsTimeout(err) || errors.Is(err, os.ErrDeadlineExceeded)
}
