// Package shtest runs shell commands against an in-memory board.
package shtest

import (
	"bytes"
	"context"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/cli/sh"
	"github.com/robotalks/usbadda/pkg/comm/commtest"
	"github.com/robotalks/usbadda/pkg/env"
	"github.com/robotalks/usbadda/pkg/telemetry"
)

// Shell is a sh.Shell wired to a commtest.Board on card 0.
type Shell struct {
	*sh.Shell
	Board  *commtest.Board
	Stdout bytes.Buffer
	Stderr bytes.Buffer
}

// New creates a Shell with all registered commands.
func New() *Shell {
	s := &Shell{Board: commtest.NewBoard()}
	s.Shell = sh.New(env.NewConfig())
	s.Out, s.ErrOut = &s.Stdout, &s.Stderr
	s.OpenDevice = func() (*adda.Device, error) {
		return adda.New(s.Board, 0)
	}
	return s
}

// WithPublisher makes the shell publish to pub.
func (s *Shell) WithPublisher(pub telemetry.Publisher) *Shell {
	s.Config.MQTTURL = "mqtt://test"
	s.OpenPublisher = func() (telemetry.Publisher, error) {
		return pub, nil
	}
	return s
}

// Run runs a command line and returns the exit code.
func (s *Shell) Run(args ...string) int {
	return s.Shell.Run(context.Background(), args...)
}
