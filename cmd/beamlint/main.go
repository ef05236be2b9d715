// Package main provides the beamlint CLI, the thin collaborator around the
// beamlint library: file discovery, configuration and exit-code mapping.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
