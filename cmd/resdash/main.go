// Command resdash is a terminal dashboard for processed clinical resources.
package main

import (
	"os"

	"github.com/pact-ai/resdash/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
