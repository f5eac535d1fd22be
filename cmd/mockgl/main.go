// Command mockgl drives the emulated buffer context from the shell: it lists
// the entry-point catalogue, runs scenario files, executes wasm guests
// against the gl host module and offers an interactive session.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
