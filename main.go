// Package main is the entry point for beachcam.
package main

import (
	"github.com/beachcam-al/beachcam/cmd"
	"github.com/beachcam-al/beachcam/config"
	"github.com/beachcam-al/beachcam/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
