package main

import (
	"os"

	"github.com/fleetscore/server/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
