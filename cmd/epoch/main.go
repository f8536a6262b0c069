package main

import (
	"os"

	"github.com/epochlang/go-epoch/cmd/epoch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
