package main

import (
	"os"

	"github.com/berth-dev/berth/cmd"
)

func main() {
	// All logic lives in the cmd package so commands stay testable.
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
