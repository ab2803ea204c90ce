package main

import (
	"os"

	"github.com/cristianoliveira/activity-tray/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
