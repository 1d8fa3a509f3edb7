// cmd/tripsurvey/main.go
//
// This is the entry point for the tripsurvey CLI.
// Running `tripsurvey` with no subcommand opens the survey TUI in the
// current directory; the subcommands manage .tripsurvey/ without a terminal UI.

package main

func main() {
	Execute()
}
