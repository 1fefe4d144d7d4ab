// Package main is the entry point for the opt CLI client.
package main

import (
	"github.com/donaldgifford/osrs-price-tracker/cmd/opt/cmd"
)

func main() {
	cmd.Execute()
}
