package main

import (
	"os"

	"github.com/money-ledger/money/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
