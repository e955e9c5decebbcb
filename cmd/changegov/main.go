package main

import (
	"os"

	"github.com/dlevinson-dev/changegov/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
