package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps the result to an exit code. An interrupted
// watch surfaces as context.Canceled and exits without a message.
func run() int {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "clipforge: %v\n", err)
		}
		return 1
	}
	return 0
}
