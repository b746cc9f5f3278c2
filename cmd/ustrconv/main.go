package main

import (
	"os"

	"github.com/arloliu/ustring/cmd/ustrconv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
