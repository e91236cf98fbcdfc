package main

import (
	"os"

	"github.com/wonny/tradekit/cmd/tradekit/commands"
)

// main is the entry point for the tradekit CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
