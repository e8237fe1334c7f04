package main

import (
	"os"

	"github.com/essayflow/essayflow/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
