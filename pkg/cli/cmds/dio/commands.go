package dio

import (
	"github.com/robotalks/usbadda/pkg/cli/sh"
)

var (
	// ReadCmd reads back a DIO channel.
	ReadCmd = sh.Command{
		Name:  "dio_read",
		Group: sh.GroupDIO,
		Help:  "Read a channel",
		Args:  []string{"<0-4>"},
		Func: func(c *sh.Context) error {
			dev, err := c.Device()
			if err != nil {
				return err
			}
			val, err := dev.DIORead(c, c.Args[0])
			if err != nil {
				return err
			}
			return c.Result(val, map[string]int{"channel": c.Args[0], "value": int(val)})
		},
	}

	// WriteCmd writes a DIO channel.
	WriteCmd = sh.Command{
		Name:  "dio_write",
		Group: sh.GroupDIO,
		Help:  "Write to a channel",
		Args:  []string{"<0-4>", "<0x00-0xFF/0-255>"},
		Func: func(c *sh.Context) error {
			dev, err := c.Device()
			if err != nil {
				return err
			}
			return dev.DIOWrite(c, c.Args[0], c.Args[1])
		},
	}
)

func init() {
	sh.AddCmds(
		&ReadCmd,
		&WriteCmd,
	)
}
