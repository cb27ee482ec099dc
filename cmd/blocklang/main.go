package main

import (
	"os"

	"github.com/blocklang/blocklang/cmd/blocklang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
