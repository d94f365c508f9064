package main

import (
	"os"

	"github.com/campusplan/timegrid/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
