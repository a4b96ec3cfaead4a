// Package main is the entry point for the aibridge CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/aibridge/cmd/aibridge/commands"
	"github.com/thoreinstein/aibridge/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for _, hint := range errors.Hints(err) {
		fmt.Fprintf(os.Stderr, "  %s\n", hint)
	}
	os.Exit(errors.ExitCode(err))
}
