package main

import (
	"os"

	"github.com/ndewijer/Portfolio-Tracker/cmd/tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
