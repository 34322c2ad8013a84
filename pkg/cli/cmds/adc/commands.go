package adc

import (
	"context"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/cli/sh"
)

// setting builds a command sending one validated argument.
func setting(name, help, arg string, op func(*adda.Device, context.Context, int) error) sh.Command {
	return sh.Command{
		Name:  name,
		Group: sh.GroupADC,
		Help:  help,
		Args:  []string{arg},
		Func: func(c *sh.Context) error {
			dev, err := c.Device()
			if err != nil {
				return err
			}
			return op(dev, c, c.Args[0])
		},
	}
}

var (
	// RangeCmd selects the ADC input range.
	RangeCmd = setting("adc_range", "Set range", "<0-3>", (*adda.Device).ADCRange)
	// SamplesCmd sets the samples per read.
	SamplesCmd = setting("adc_samples", "Set samples per read", "<0-255>", (*adda.Device).ADCSamples)
	// DisableChannelCmd excludes a channel from sweeps.
	DisableChannelCmd = setting("adc_disable_channel", "Disable channel", "<0-15>", (*adda.Device).ADCDisableChannel)
	// EnableChannelCmd includes a channel in sweeps.
	EnableChannelCmd = setting("adc_enable_channel", "Enable channel", "<0-15>", (*adda.Device).ADCEnableChannel)

	// ReadAllCmd reads a sweep of all channels.
	ReadAllCmd = sh.Command{
		Name:    "adc_read_all",
		Aliases: []string{"adc_read"},
		Group:   sh.GroupADC,
		Help:    "Read channels",
		Func: func(c *sh.Context) error {
			dev, err := c.Device()
			if err != nil {
				return err
			}
			sweep, err := dev.ADCReadAll(c)
			if err != nil {
				return err
			}
			return c.Result(sweep.Values(), sweep)
		},
	}

	// ReadChannelCmd reads one channel from a sweep.
	ReadChannelCmd = sh.Command{
		Name:  "adc_read_channel",
		Group: sh.GroupADC,
		Help:  "Read channel",
		Args:  []string{"<0-15>"},
		Func: func(c *sh.Context) error {
			dev, err := c.Device()
			if err != nil {
				return err
			}
			val, err := dev.ADCReadChannel(c, c.Args[0])
			if err != nil {
				return err
			}
			return c.Result(val, adda.Sample{Channel: uint8(c.Args[0]), Value: val})
		},
	}
)

func init() {
	sh.AddCmds(
		&RangeCmd,
		&SamplesCmd,
		&DisableChannelCmd,
		&EnableChannelCmd,
		&ReadAllCmd,
		&ReadChannelCmd,
	)
}
