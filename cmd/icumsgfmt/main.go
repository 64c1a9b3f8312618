package main

import (
	"os"

	"github.com/pyrocat101/icumsgfmt/cmd/icumsgfmt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
