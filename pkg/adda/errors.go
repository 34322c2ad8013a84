package adda

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates an argument is out of range. It is always
	// reported before any byte is written to the transport.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedResponse indicates the data bytes don't match the expected layout.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrChannelNotFound indicates an ADC channel is absent from a sweep.
	ErrChannelNotFound = errors.New("channel not found")
)

// ArgumentError describes an out-of-range argument.
type ArgumentError struct {
	Op    Op
	Name  string
	Value int
	Min   int
	Max   int
}

// Error implements error.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s %d out of range [%d, %d]", e.Op, e.Name, e.Value, e.Min, e.Max)
}

// Unwrap returns ErrInvalidArgument.
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// MalformedResponseError describes a response which can't be decoded.
type MalformedResponseError struct {
	Op     Op
	Data   []byte
	Reason string
}

// Error implements error.
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response %q: %s", e.Op, e.Data, e.Reason)
}

// Unwrap returns ErrMalformedResponse.
func (e *MalformedResponseError) Unwrap() error {
	return ErrMalformedResponse
}

// ChannelNotFoundError is reported when a sweep lacks the requested channel.
type ChannelNotFoundError struct {
	Channel int
}

// Error implements error.
func (e *ChannelNotFoundError) Error() string {
	return fmt.Sprintf("ADC channel %d not found in sweep", e.Channel)
}

// Unwrap returns ErrChannelNotFound.
func (e *ChannelNotFoundError) Unwrap() error {
	return ErrChannelNotFound
}
