// Package main is the entry point for the susops-tray menu bar app.
package main

import (
	"os"

	"github.com/susops/susops-tray/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
