// Package main is the entry point for the osrs-price-tracker server.
package main

import (
	"os"

	"github.com/donaldgifford/osrs-price-tracker/cmd/osrs-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
