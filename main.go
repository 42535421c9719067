package main

import (
	"os"

	"github.com/gramtest/gramtest/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
