/*
main.go - Command-line entry point

PURPOSE:
  Derives scenarios from files or presets without running the server.

COMMANDS:
  vanslyke derive --file scenario.toml     Derive a JSON or TOML scenario file
  vanslyke derive --preset fdb-target      Derive a demo preset
  vanslyke derive ... --json               Print the API's JSON instead
  vanslyke presets                         List demo presets
  vanslyke formulas                        Print the formula catalogue
  vanslyke requirements                    Print what each headline output needs

EXIT STATUS:
  0 on success, 1 on a command error (bad file, negative input, unknown preset).
  Unresolved outputs are not an error.

SEE ALSO:
  - factory/scenario.go: Scenario file format
  - report/report.go: Terminal rendering
*/
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
