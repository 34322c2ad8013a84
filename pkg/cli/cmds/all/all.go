// Package all registers all commands of the shell.
package all

import (
	// register commands
	_ "github.com/robotalks/usbadda/pkg/cli/cmds/adc"
	_ "github.com/robotalks/usbadda/pkg/cli/cmds/dac"
	_ "github.com/robotalks/usbadda/pkg/cli/cmds/dio"
	_ "github.com/robotalks/usbadda/pkg/cli/cmds/telemetry"
)
