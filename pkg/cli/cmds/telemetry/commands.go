package telemetry

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/cli/sh"
	fx "github.com/robotalks/usbadda/pkg/framework"
)

var (
	// PublishCmd reads one sweep and publishes it.
	PublishCmd = sh.Command{
		Name:  "adc_publish",
		Group: sh.GroupTelemetry,
		Help:  "Publish channels",
		Func: func(c *sh.Context) error {
			reporter, err := c.Reporter()
			if err != nil {
				return err
			}
			dev, err := c.Device()
			if err != nil {
				return err
			}
			sweep, err := dev.ADCReadAll(c)
			if err != nil {
				return err
			}
			return reporter.ReportSweep(sweep)
		},
	}

	// MonitorCmd reads sweeps periodically until stopped.
	MonitorCmd = sh.Command{
		Name:    "adc_monitor",
		Group:   sh.GroupTelemetry,
		Help:    "Monitor channels",
		Args:    []string{"<period_ms>"},
		OptArgs: []string{"count"},
		Func:    monitor,
	}
)

func monitor(c *sh.Context) error {
	if c.Args[0] <= 0 {
		return &sh.UsageError{Message: "period_ms must be positive"}
	}
	dev, err := c.Device()
	if err != nil {
		return err
	}
	var reporter sweepReporter
	if c.Shell.PublisherConfigured() {
		if reporter, err = c.Reporter(); err != nil {
			return err
		}
	}

	loop := fx.NewLoop(time.Duration(c.Args[0]) * time.Millisecond)
	loop.Count = c.Arg(1, 0)
	loop.StopOnError = true
	loop.Add(fx.ControlFunc(func(ctx fx.ControlContext) error {
		sweep, err := dev.ADCReadAll(ctx.Context())
		if err != nil {
			return err
		}
		if err := c.Result(sweep.Values(), sweep); err != nil {
			return err
		}
		if reporter != nil {
			if err := reporter.ReportSweep(sweep); err != nil {
				glog.Errorf("publish sweep %d: %v", ctx.Iteration(), err)
			}
		}
		return nil
	}))
	return fx.NewRunnerWith(c).HandleSignals().Go(fx.NamedRun("adc_monitor", loop)).Wait()
}

type sweepReporter interface {
	ReportSweep(adda.Sweep) error
}

func init() {
	sh.AddCmds(
		&PublishCmd,
		&MonitorCmd,
	)
}
