package main

import (
	"os"

	"github.com/edfolio/questline/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
