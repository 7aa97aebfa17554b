package main

import (
	"os"

	"github.com/joho/godotenv"

	"timesheet/cmd"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// exitFunc is swapped in tests to observe the exit code.
var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

// run loads the environment, wires version info and executes the CLI.
func run() int {
	// A .env file in the working directory feeds the TIMESHEET_*
	// overrides; a missing file is fine.
	_ = godotenv.Load()

	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
