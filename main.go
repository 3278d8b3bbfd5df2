// opskit is a CLI toolkit for operational scripts, centered on a
// format-preserving flat-file configuration store.
package main

import (
	"fmt"
	"os"

	"opskit/cmd"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(cmd.ExitCode(err))
}
