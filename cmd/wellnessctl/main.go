package main

import (
	"os"

	"github.com/wellnest/wellness-api/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
