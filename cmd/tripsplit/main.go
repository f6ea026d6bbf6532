package main

import (
	"os"

	"github.com/tripsplit-dev/tripsplit/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
