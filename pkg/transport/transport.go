// Package transport opens the byte channel to a board.
package transport

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/usbadda/pkg/comm"
)

// Defaults of the board's serial interface.
const (
	DefaultAddress      = "/dev/ttyACM0"
	DefaultBaud         = 9600
	DefaultReadTimeout  = 2 * time.Second
	DefaultWriteTimeout = 2 * time.Second
)

// Config specifies how to reach the board.
type Config struct {
	// Address is a serial device path, or a URL:
	//   serial:///dev/ttyACM0
	//   tcp://host:port         raw TCP serial bridge
	//   ws://host:port/path     websocket serial bridge (also wss)
	Address      string
	Baud         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Address:      DefaultAddress,
		Baud:         DefaultBaud,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
	}
}

// Open opens the transport. Errors wrap comm.ErrConnection.
func Open(conf Config) (comm.Transport, error) {
	scheme, target, err := parseAddress(conf.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", comm.ErrConnection, err)
	}
	glog.Infof("opening %s %q", scheme, target)
	var t comm.Transport
	switch scheme {
	case "serial":
		t, err = openSerial(target, conf)
	case "tcp":
		t, err = dialTCP(target, conf)
	case "ws", "wss":
		t, err = dialWebsocket(conf.Address, conf)
	default:
		err = fmt.Errorf("unknown scheme %q", scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", comm.ErrConnection, conf.Address, err)
	}
	return t, nil
}

func parseAddress(addr string) (scheme, target string, err error) {
	if addr == "" {
		return "", "", fmt.Errorf("empty address")
	}
	if !strings.Contains(addr, "://") {
		return "serial", addr, nil
	}
	u, err := url.Parse(addr)
	if err != nil {
		return "", "", err
	}
	switch u.Scheme {
	case "serial":
		target = u.Path
		if u.Host != "" {
			target = u.Host + u.Path
		}
	case "tcp":
		target = u.Host
	default:
		target = u.Host + u.Path
	}
	if target == "" {
		return "", "", fmt.Errorf("missing target in %q", addr)
	}
	return u.Scheme, target, nil
}
