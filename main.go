package main

import (
	"os"

	"github.com/ravlabs/ravos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
