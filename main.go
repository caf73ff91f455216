package main

import (
	"os"

	"github.com/abhisek/leerkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
