package main

import (
	"github.com/robotalks/usbadda/pkg/cli/sh"
	"github.com/robotalks/usbadda/pkg/env"

	_ "github.com/robotalks/usbadda/pkg/cli/cmds/all"
)

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
