// Package main is the entry point for the dirjump CLI.
package main

import (
	"os"

	"github.com/runger/dirjump/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
