package main

import (
	"os"

	"github.com/rustyeddy/courtside/cmd/courtside/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
