// ABOUTME: Main entry point for the preview command line tool
// ABOUTME: Resolves a link into its content sources and prints the result

package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
