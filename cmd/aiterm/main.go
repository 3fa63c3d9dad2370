// Package main is the entry point for the aiterm shell.
package main

import (
	"os"

	"github.com/runger/aiterm/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
