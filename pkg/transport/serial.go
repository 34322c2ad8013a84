package transport

import (
	"os"
	"time"

	"go.bug.st/serial"
)

// serialPort adds a write timeout to serial.Port, which only supports
// read timeouts.
type serialPort struct {
	serial.Port
	writeTimeout time.Duration
}

func openSerial(name string, conf Config) (*serialPort, error) {
	mode := &serial.Mode{
		BaudRate: conf.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	if conf.ReadTimeout > 0 {
		if err := port.SetReadTimeout(conf.ReadTimeout); err != nil {
			port.Close()
			return nil, err
		}
	}
	return &serialPort{Port: port, writeTimeout: conf.WriteTimeout}, nil
}

type writeResult struct {
	n   int
	err error
}

// Write implements io.Writer. On timeout the pending write is abandoned
// and the caller is expected to close the port.
func (p *serialPort) Write(b []byte) (int, error) {
	if p.writeTimeout <= 0 {
		return p.Port.Write(b)
	}
	resCh := make(chan writeResult, 1)
	go func() {
		n, err := p.Port.Write(b)
		resCh <- writeResult{n: n, err: err}
	}()
	timer := time.NewTimer(p.writeTimeout)
	defer timer.Stop()
	select {
	case res := <-resCh:
		return res.n, res.err
	case <-timer.C:
		return 0, os.ErrDeadlineExceeded
	}
}
