package main

import (
	"os"

	"github.com/ThomasCrouzet/compose-ports/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
