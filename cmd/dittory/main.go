// Command dittory runs the constant-parameter analyzer over a
// TypeScript/TSX source tree.
//
// Usage:
//
//	dittory [directory] [--min=N] [--target=all|components|functions] [--output=simple|verbose] [--tsconfig=path]
package main

import (
	"os"

	"github.com/dittory/dittory/cmd/dittory/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
