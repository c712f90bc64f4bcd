// Package main is the entry point for the teabank CLI.
package main

import (
	"os"

	"github.com/teabank/teabank/cmd/teabank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
