package main

import (
	"os"

	"github.com/shiftdesk/shiftdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
