package main

import (
	"os"

	"github.com/toyz/pyforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
