package main

import (
	"os"

	"github.com/h3x49r4m/peta-search/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
