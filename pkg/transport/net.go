package transport

import (
	"net"
	"time"

	"golang.org/x/net/websocket"
)

// netTransport applies read/write deadlines per call, so a network bridge
// times out the same way a serial port does.
type netTransport struct {
	net.Conn
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func newNetTransport(conn net.Conn, conf Config) *netTransport {
	return &netTransport{
		Conn:         conn,
		readTimeout:  conf.ReadTimeout,
		writeTimeout: conf.WriteTimeout,
	}
}

// Read implements io.Reader.
func (t *netTransport) Read(p []byte) (int, error) {
	if t.readTimeout > 0 {
		if err := t.Conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return 0, err
		}
	}
	return t.Conn.Read(p)
}

// Write implements io.Writer.
func (t *netTransport) Write(p []byte) (int, error) {
	if t.writeTimeout > 0 {
		if err := t.Conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
			return 0, err
		}
	}
	return t.Conn.Write(p)
}

func dialTimeout(conf Config) time.Duration {
	if conf.WriteTimeout > 0 {
		return conf.WriteTimeout
	}
	return DefaultWriteTimeout
}

func dialTCP(addr string, conf Config) (*netTransport, error) {
	dialer := &net.Dialer{Timeout: dialTimeout(conf)}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	return newNetTransport(conn, conf), nil
}

func dialWebsocket(rawURL string, conf Config) (*netTransport, error) {
	wsConf, err := websocket.NewConfig(rawURL, "http://localhost/")
	if err != nil {
		return nil, err
	}
	wsConf.Dialer = &net.Dialer{Timeout: dialTimeout(conf)}
	conn, err := websocket.DialConfig(wsConf)
	if err != nil {
		return nil, err
	}
	conn.PayloadType = websocket.BinaryFrame
	return newNetTransport(conn, conf), nil
}
