// Package main is the entry point for the alcove CLI.
package main

import (
	"fmt"
	"os"

	"github.com/alcove-sh/alcove/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
