package comm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// scriptedTransport replies with queued chunks, one chunk per Read call.
// An exhausted queue behaves like a read timeout on a serial port.
type scriptedTransport struct {
	written bytes.Buffer
	writes  int
	reads   int
	replies [][]byte
	readErr error
	closed  int

	// write overrides Write when set.
	write func(p []byte) (int, error)
	// onRead is called before every Read.
	onRead func()
}

func (s *scriptedTransport) Write(p []byte) (int, error) {
	s.writes++
	if s.write != nil {
		return s.write(p)
	}
	return s.written.Write(p)
}

func (s *scriptedTransport) Read(p []byte) (int, error) {
	s.reads++
	if s.onRead != nil {
		s.onRead()
	}
	if len(s.replies) == 0 {
		if s.readErr != nil {
			return 0, s.readErr
		}
		return 0, nil
	}
	n := copy(p, s.replies[0])
	if n < len(s.replies[0]) {
		s.replies[0] = s.replies[0][n:]
	} else {
		s.replies = s.replies[1:]
	}
	return n, nil
}

func (s *scriptedTransport) Close() error {
	s.closed++
	return nil
}

func (s *scriptedTransport) reply(chunks ...string) *scriptedTransport {
	for _, c := range chunks {
		s.replies = append(s.replies, []byte(c))
	}
	return s
}

type timeoutErr struct{}

func (timeoutErr) Error() string { return "i/o timeout" }
func (timeoutErr) Timeout() bool { return true }

func TestTransactNoData(t *testing.T) {
	tr := (&scriptedTransport{}).reply("S0D003e8")
	c := NewConn(tr)
	data, err := c.Transact(context.Background(), []byte("S0D003e8"), 0)
	require.NoError(t, err)
	require.Empty(t, data)
	require.Equal(t, "S0D003e8", tr.written.String())
	require.Equal(t, 1, tr.reads)
	require.NoError(t, c.Broken())
}

func TestTransactWithData(t *testing.T) {
	testCases := []struct {
		name   string
		chunks []string
	}{
		{"single chunk", []string{"S0R2R2x2f"}},
		{"split echo", []string{"S0", "R2", "R2x2f"}},
		{"byte by byte", []string{"S", "0", "R", "2", "R", "2", "x", "2", "f"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := (&scriptedTransport{}).reply(tc.chunks...)
			data, err := NewConn(tr).Transact(context.Background(), []byte("S0R2"), 5)
			require.NoError(t, err)
			require.Equal(t, []byte("R2x2f"), data)
		})
	}
}

func TestTransactEchoMismatch(t *testing.T) {
	tr := (&scriptedTransport{}).reply("S0R3", "R2x2f")
	c := NewConn(tr)
	data, err := c.Transact(context.Background(), []byte("S0R2"), 5)
	require.Nil(t, data)
	require.True(t, errors.Is(err, ErrEchoMismatch))
	var mismatch *EchoMismatchError
	require.True(t, errors.As(err, &mismatch))
	require.Equal(t, []byte("S0R3"), mismatch.Received)
	require.Equal(t, 1, tr.reads, "data phase must not be read")
	require.Len(t, tr.replies, 1)
}

func TestTransactEchoTimeout(t *testing.T) {
	testCases := []struct {
		name string
		tr   *scriptedTransport
	}{
		{"zero read", (&scriptedTransport{}).reply("S0")},
		{"timeout error", &scriptedTransport{replies: [][]byte{[]byte("S0")}, readErr: timeoutErr{}}},
		{"deadline exceeded", &scriptedTransport{readErr: os.ErrDeadlineExceeded}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConn(tc.tr).Transact(context.Background(), []byte("S0AR"), 96)
			require.True(t, errors.Is(err, ErrTimeout))
			var te *TimeoutError
			require.True(t, errors.As(err, &te))
			require.Equal(t, PhaseEcho, te.Phase)
			require.Equal(t, 4, te.Expected)
		})
	}
}

func TestTransactResponseTimeout(t *testing.T) {
	tr := (&scriptedTransport{}).reply("S0AR", "0123")
	c := NewConn(tr)
	data, err := c.Transact(context.Background(), []byte("S0AR"), 96)
	require.Nil(t, data)
	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	require.Equal(t, PhaseResponse, te.Phase)
	require.Equal(t, 96, te.Expected)
	require.Equal(t, 4, te.Received)
}

func TestTransactBrokenAfterFailure(t *testing.T) {
	tr := (&scriptedTransport{}).reply("XXXX")
	c := NewConn(tr)
	_, err := c.Transact(context.Background(), []byte("S0R2"), 5)
	require.True(t, errors.Is(err, ErrEchoMismatch))
	require.Error(t, c.Broken())

	_, err = c.Transact(context.Background(), []byte("S0R2"), 5)
	require.Equal(t, ErrBroken, err)
	require.Equal(t, 1, tr.writes)
}

func TestTransactTransportError(t *testing.T) {
	tr := &scriptedTransport{readErr: io.EOF}
	_, err := NewConn(tr).Transact(context.Background(), []byte("S0R2"), 5)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.Equal(t, PhaseEcho, te.Phase)
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestTransactCanceled(t *testing.T) {
	tr := &scriptedTransport{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewConn(tr).Transact(ctx, []byte("S0R2"), 5)
	require.Equal(t, context.Canceled, err)
	require.Zero(t, tr.writes)
}

func TestConnClose(t *testing.T) {
	tr := &scriptedTransport{}
	c := NewConn(tr)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.Equal(t, 1, tr.closed)
	_, err := c.Transact(context.Background(), []byte("S0R2"), 5)
	require.Equal(t, os.ErrClosed, err)
}

func TestTransactShortWrite(t *testing.T) {
	tr := &scriptedTransport{write: func(p []byte) (int, error) { return len(p) - 1, nil }}
	tr.reply("S0R2", "R2x2f")
	c := NewConn(tr)
	data, err := c.Transact(context.Background(), []byte("S0R2"), 5)
	require.Nil(t, data)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	require.Equal(t, PhaseWrite, te.Phase)
	require.True(t, errors.Is(err, io.ErrShortWrite))
	require.Zero(t, tr.reads)
	require.Equal(t, err, c.Broken())

	_, err = c.Transact(context.Background(), []byte("S0R2"), 5)
	require.Equal(t, ErrBroken, err)
}

func TestTransactWriteTimeout(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{"timeout error", timeoutErr{}},
		{"deadline exceeded", os.ErrDeadlineExceeded},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &scriptedTransport{write: func([]byte) (int, error) { return 2, tc.err }}
			c := NewConn(tr)
			_, err := c.Transact(context.Background(), []byte("S0DR1"), 0)
			require.True(t, errors.Is(err, ErrTimeout))
			var te *TimeoutError
			require.True(t, errors.As(err, &te))
			require.Equal(t, PhaseWrite, te.Phase)
			require.Equal(t, 5, te.Expected)
			require.Equal(t, 2, te.Received)
			require.Zero(t, tr.reads)
			require.Error(t, c.Broken())
		})
	}
}

func TestTransactWriteError(t *testing.T) {
	failure := errors.New("device unplugged")
	tr := &scriptedTransport{write: func([]byte) (int, error) { return 0, failure }}
	_, err := NewConn(tr).Transact(context.Background(), []byte("S0DR1"), 0)
	require.True(t, errors.Is(err, failure))
	require.False(t, errors.Is(err, ErrTimeout))
}

func TestTransactPhaseTimeout(t *testing.T) {
	now := time.Unix(0, 0)
	// every read delivers a single byte, 1.9s apart
	tr := &scriptedTransport{onRead: func() { now = now.Add(1900 * time.Millisecond) }}
	tr.reply("S", "0", "A", "R", "0", "1", "2", "3")
	c := NewConn(tr)
	c.now = func() time.Time { return now }
	c.PhaseTimeout = 2 * time.Second

	_, err := c.Transact(context.Background(), []byte("S0AR"), 96)
	var te *TimeoutError
	require.True(t, errors.As(err, &te))
	require.Equal(t, PhaseEcho, te.Phase)
	require.Equal(t, 2, te.Received)
	require.Equal(t, 2, tr.reads)
}

func TestTransactPhaseTimeoutPerPhase(t *testing.T) {
	now := time.Unix(0, 0)
	tr := &scriptedTransport{onRead: func() { now = now.Add(time.Second) }}
	tr.reply("S0R2", "R2x", "2f")
	c := NewConn(tr)
	c.now = func() time.Time { return now }
	c.PhaseTimeout = 2 * time.Second

	data, err := c.Transact(context.Background(), []byte("S0R2"), 5)
	require.NoError(t, err)
	require.Equal(t, []byte("R2x2f"), data)
}
