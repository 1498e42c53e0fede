package main

import (
	"os"

	"github.com/mu-lang/mu/cmd/mu/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
