package main

import (
	"os"

	"github.com/roboco-io/jpeg2pdf/internal/cli"
)

// Set by -ldflags "-X main.version=..." at release time.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
