package main

import (
	"os"

	"chaingate/cmd/gateway/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
