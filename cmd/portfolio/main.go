package main

import (
	"os"

	"github.com/portfolio-console/console/cmd/portfolio/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// errors are already printed with color by the printer package
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
