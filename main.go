// propchat – natural-language chat over a real-estate database.
//
// Entry point: initializes the Cobra root command and launches the
// Bubble Tea chat TUI by default (no subcommand required).
package main

import (
	"os"

	"github.com/propchat/propchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
