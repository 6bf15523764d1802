// Command dtsgen is a thin CLI front end over pkg/dtsx: emitting a single
// file's declaration text, batch-processing a directory, or smoke-testing
// that a file yields any declarations at all. Its scope deliberately stops
// at "write a .d.ts next to the input" - no config-file loading, no output
// directory layout, no glob beyond filepath.Glob (SPEC_FULL.md §4).
package main

import (
	"fmt"
	"os"

	"github.com/stacksjs/dtsx/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
