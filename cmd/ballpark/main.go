// Package main is the entry point for the ballpark CLI.
package main

import (
	"os"

	"github.com/cromos/ballpark/cmd/ballpark/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
