// Package main is the entry point for the cart-transform CLI.
package main

import (
	"os"

	"cart-transform/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
