package main

import (
	"os"

	"github.com/iamdhruvsharma3/arbitrage/cmd/arbbot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
