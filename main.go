package main

import (
	"os"

	"github.com/tensebunny/tensebunny/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
