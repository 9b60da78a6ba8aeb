package main

import (
	"os"

	"github.com/josi-bot/josi/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
