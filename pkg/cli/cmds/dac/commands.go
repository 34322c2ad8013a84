package dac

import (
	"context"

	"github.com/robotalks/usbadda/pkg/adda"
	"github.com/robotalks/usbadda/pkg/cli/sh"
)

func channelCmd(name, help string, args []string, op func(dev *adda.Device, ctx context.Context, args []int) error) sh.Command {
	return sh.Command{
		Name:  name,
		Group: sh.GroupDAC,
		Help:  help,
		Args:  append([]string{"<0-1>"}, args...),
		Func: func(c *sh.Context) error {
			dev, err := c.Device()
			if err != nil {
				return err
			}
			return op(dev, c, c.Args)
		},
	}
}

var (
	// RangeCmd sets the output range of a channel.
	RangeCmd = channelCmd("dac_range", "Set channel range", []string{"<0-15>"},
		func(dev *adda.Device, ctx context.Context, args []int) error {
			return dev.DACRange(ctx, args[0], args[1])
		})

	// SetCmd sets the output value of a channel.
	SetCmd = channelCmd("dac_set", "Set channel value", []string{"<0x0000-0xFFFF/0-65535>"},
		func(dev *adda.Device, ctx context.Context, args []int) error {
			return dev.DACSet(ctx, args[0], args[1])
		})

	// AdjustCmd adjusts the output value of a channel.
	AdjustCmd = channelCmd("dac_adjust", "Adjust channel value", []string{"<0x0000-0xFFFF/0-65535>"},
		func(dev *adda.Device, ctx context.Context, args []int) error {
			return dev.DACAdjust(ctx, args[0], args[1])
		})

	// ResetCmd drives a channel to ground.
	ResetCmd = channelCmd("dac_reset", "Reset channel to GND", nil,
		func(dev *adda.Device, ctx context.Context, args []int) error {
			return dev.DACReset(ctx, args[0])
		})
)

func init() {
	sh.AddCmds(
		&RangeCmd,
		&SetCmd,
		&AdjustCmd,
		&ResetCmd,
	)
}
