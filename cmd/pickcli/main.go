package main

import (
	"github.com/robotalks/picker/pkg/cli/sh"

	_ "github.com/robotalks/picker/pkg/cli/cmds/device"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
