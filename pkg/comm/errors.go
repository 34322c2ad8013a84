package comm

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection indicates the transport could not be opened.
	ErrConnection = errors.New("connection error")
	// ErrEchoMismatch indicates the echoed bytes differ from the sent frame.
	ErrEchoMismatch = errors.New("echo mismatch")
	// ErrTimeout indicates fewer bytes than expected arrived in time.
	ErrTimeout = errors.New("timeout")
	// ErrBroken indicates a previous transaction left the stream in an
	// unknown state and the transport must be reopened.
	ErrBroken = errors.New("connection broken")
)

// Phase identifies the step of a transaction.
type Phase string

// Transaction phases.
const (
	PhaseWrite    Phase = "write"
	PhaseEcho     Phase = "echo"
	PhaseResponse Phase = "response"
)

// TimeoutError is reported when the transport timed out in a phase.
type TimeoutError struct {
	Phase    Phase
	Expected int
	Received int
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timeout: received %d of %d bytes", e.Phase, e.Received, e.Expected)
}

// Unwrap returns ErrTimeout.
func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// EchoMismatchError is reported when the board echoed something else.
type EchoMismatchError struct {
	Sent     []byte
	Received []byte
}

// Error implements error.
func (e *EchoMismatchError) Error() string {
	return fmt.Sprintf("unexpected echo %q, expected %q", e.Received, e.Sent)
}

// Unwrap returns ErrEchoMismatch.
func (e *EchoMismatchError) Unwrap() error {
	return ErrEchoMismatch
}

// TransportError wraps a failure reported by the transport itself.
type TransportError struct {
	Phase Phase
	Err   error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

// Unwrap returns the transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
