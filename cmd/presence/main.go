// Package main provides the entry point for presence.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/safedep/presence/cli"

	// Embedded zone database for display.timezone on hosts without one.
	_ "time/tzdata"
)

func main() {
	if err := cli.Execute(); err != nil {
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			fmt.Fprint(os.Stderr, coder.Message())
			os.Exit(coder.ExitCode())
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitGeneral)
	}
}
